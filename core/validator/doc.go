// Package validator provides rule-based validation with struct tag support and
// detailed error reporting.
//
// Rules are small values pairing a check with the error it reports:
//
//	err := validator.Apply(
//		validator.Required("faculty_name", in.FacultyName),
//		validator.ValidEmail("email", in.Email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// render errs next to the inputs
//	}
//
// Structs can declare rules with the `validate` tag. Rules are separated by
// semicolons and parameters follow a colon:
//
//	type ContactRow struct {
//		UniversityName string `form:"university_name" validate:"required"`
//		Email          string `form:"email" validate:"required;email"`
//	}
//
//	if err := validator.ValidateStruct(&row); err != nil {
//		// errors.Is(err, validator.ErrValidation) == true
//	}
//
// Field paths use the `form` tag when present, so validation errors can be
// mapped back to HTML inputs. Slices of structs are validated element by
// element with index-qualified paths (rows.0.email).
//
// IsEmail implements the syntactic check local@domain.tld with a final label
// of at least two letters. It never performs DNS or mailbox verification.
package validator
