package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/binder"
)

type rowsForm struct {
	FacultyName  string   `form:"faculty_name"`
	Universities []string `form:"university_name"`
	Emails       []string `form:"email"`
	Tags         []string `form:"tags,split"`
	Count        int      `form:"count"`
	Agree        bool     `form:"agree"`
	Internal     string   `form:"-"`
	Optional     *string  `form:"optional"`
}

func TestForm_URLEncoded(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("faculty_name", "Jane\r\nDoe")
	form.Add("university_name", "University of Memphis, TN")
	form.Add("university_name", "")
	form.Add("email", "bob@ut.edu")
	form.Add("email", "x@y.org")
	form.Set("tags", "a, b,c")
	form.Set("count", "3")
	form.Set("agree", "on")
	form.Set("Internal", "nope")
	form.Set("optional", "here")

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got rowsForm
	require.NoError(t, binder.Form()(req, &got))

	assert.Equal(t, "Jane Doe", got.FacultyName)
	assert.Equal(t, []string{"University of Memphis, TN", ""}, got.Universities)
	assert.Equal(t, []string{"bob@ut.edu", "x@y.org"}, got.Emails)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
	assert.Equal(t, 3, got.Count)
	assert.True(t, got.Agree)
	assert.Empty(t, got.Internal)
	require.NotNil(t, got.Optional)
	assert.Equal(t, "here", *got.Optional)
}

func TestForm_Multipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("faculty_name", "Jane"))
	require.NoError(t, mw.WriteField("university_name", "UT"))
	require.NoError(t, mw.WriteField("university_name", "MIT"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var got rowsForm
	require.NoError(t, binder.Form()(req, &got))

	assert.Equal(t, "Jane", got.FacultyName)
	assert.Equal(t, []string{"UT", "MIT"}, got.Universities)
}

func TestForm_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		target      any
		wantErr     error
	}{
		{
			name:    "missing content type",
			target:  &rowsForm{},
			wantErr: binder.ErrMissingContentType,
		},
		{
			name:        "json is not a form",
			contentType: "application/json",
			body:        `{}`,
			target:      &rowsForm{},
			wantErr:     binder.ErrUnsupportedMediaType,
		},
		{
			name:        "multipart without boundary",
			contentType: "multipart/form-data",
			target:      &rowsForm{},
			wantErr:     binder.ErrFailedToParseForm,
		},
		{
			name:        "invalid int",
			contentType: "application/x-www-form-urlencoded",
			body:        "count=many",
			target:      &rowsForm{},
			wantErr:     binder.ErrFailedToParseForm,
		},
		{
			name:        "non pointer target",
			contentType: "application/x-www-form-urlencoded",
			body:        "faculty_name=x",
			target:      rowsForm{},
			wantErr:     binder.ErrFailedToParseForm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			err := binder.Form()(req, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
