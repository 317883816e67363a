package validator_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/validator"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"bob@ut.edu", true},
		{"first.last+tag@mail.example.org", true},
		{"user_%x-y@sub-domain.example.com", true},
		{"  padded@example.com  ", true},
		{"a@b", false},
		{"", false},
		{"   ", false},
		{"userexample.com", false},
		{"user@", false},
		{"@example.com", false},
		{"user@@example.com", false},
		{"user @example.com", false},
		{"user@example.c", false},
		{"user@example.c0m", false},
		{"user@exa_mple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validator.IsEmail(tt.email))
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Jane"),
			validator.ValidEmail("email", "jane@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects failures in order", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
			validator.MaxLenString("title", "abcdef", 3),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidation)

		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "email", errs[1].Field)
		assert.Equal(t, "nope", errs[1].Value)
		assert.Equal(t, "title", errs[2].Field)
		assert.True(t, errs.Has("email"))
		assert.False(t, errs.Has("missing"))
	})

	t.Run("extract from unrelated error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	})
}

type row struct {
	University string `form:"university_name" validate:"required"`
	Email      string `form:"email" validate:"required;email"`
	Note       string `validate:"max:5"`
	Ignored    string `validate:"-"`
}

type submission struct {
	Faculty string `form:"faculty_name" validate:"required"`
	Rows    []row  `form:"rows"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	t.Run("valid struct", func(t *testing.T) {
		t.Parallel()

		s := submission{
			Faculty: "Jane",
			Rows:    []row{{University: "UT", Email: "bob@ut.edu"}},
		}
		assert.NoError(t, validator.ValidateStruct(&s))
	})

	t.Run("reports nested slice paths", func(t *testing.T) {
		t.Parallel()

		s := submission{
			Rows: []row{
				{University: "UT", Email: "bob@ut.edu"},
				{University: "", Email: "bad", Note: "too long"},
			},
		}
		err := validator.ValidateStruct(&s)
		require.Error(t, err)

		errs := validator.ExtractValidationErrors(err)
		assert.True(t, errs.Has("faculty_name"))
		assert.True(t, errs.Has("rows.1.university_name"))
		assert.True(t, errs.Has("rows.1.email"))
		assert.True(t, errs.Has("rows.1.Note"))
		assert.False(t, errs.Has("rows.0.email"))
	})

	t.Run("rejects non pointer", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, validator.ValidateStruct(submission{}))
	})
}

func TestRegisterValidator(t *testing.T) {
	t.Parallel()

	validator.RegisterValidator("edu_domain", func(field string, value reflect.Value, params []string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return len(value.String()) > 4 && value.String()[len(value.String())-4:] == ".edu" },
			Error: validator.ValidationError{Field: field, Message: "must be an .edu address"},
		}
	})

	type eduContact struct {
		Email string `validate:"email;edu_domain"`
	}

	assert.NoError(t, validator.ValidateStruct(&eduContact{Email: "bob@ut.edu"}))

	err := validator.ValidateStruct(&eduContact{Email: "bob@ut.com"})
	require.Error(t, err)
	assert.Equal(t, "must be an .edu address", validator.ExtractValidationErrors(err)[0].Message)
}
