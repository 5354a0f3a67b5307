// Package gmail files generated status emails as Gmail drafts and
// reads them back.
//
// Drafts are created rather than sent so the user can review and send
// from their own mailbox. The package also renders generated text into
// the HTML email shell and strips that shell again for display.
package gmail
