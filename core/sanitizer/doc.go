// Package sanitizer cleans user input before validation and storage.
//
// Functions can be called directly or applied through the `sanitize` struct tag,
// where sanitizers run left to right:
//
//	type ContactRow struct {
//		UniversityName string `sanitize:"text,max:200"`
//		Email          string `sanitize:"trim"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&row); err != nil {
//		return err
//	}
//
// The "text" sanitizer removes control characters, collapses the value to a
// single trimmed line and applies NFC normalization. It is the default for
// free-text form inputs that end up as CSV cells.
package sanitizer
