// Package binder maps HTTP request bodies onto Go structs.
//
// Form handles application/x-www-form-urlencoded and multipart/form-data
// bodies using `form` struct tags. Scalars take the first submitted value;
// slices take every submitted value in order, which keeps parallel input
// lists (one per repeated block on a page) aligned by index.
//
//	var in struct {
//		FacultyName  string   `form:"faculty_name"`
//		Universities []string `form:"university_name"`
//	}
//	if err := binder.Form()(r, &in); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseForm) ...
//	}
//
// Bound strings have NUL bytes, line breaks and invalid UTF-8 removed.
package binder
