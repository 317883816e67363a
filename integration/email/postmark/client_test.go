package postmark_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/integration/email/postmark"
)

func params() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "office@example.edu",
		Subject:  "University Contact Information Form: Jane",
		BodyText: "text",
		BodyHTML: "<p>html</p>",
		Attachments: []email.Attachment{{
			Filename:    "submissions.csv",
			ContentType: "text/csv",
			Content:     []byte("a,b\n"),
		}},
	}
}

func newServer(t *testing.T, status int, reply string, got *map[string]any, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		if got != nil {
			_ = json.Unmarshal(body, got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := postmark.New(postmark.Config{SenderEmail: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = postmark.New(postmark.Config{SenderEmail: "forms@example.edu", ReplyTo: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = postmark.New(postmark.Config{})
	assert.NoError(t, err)

	assert.Panics(t, func() { postmark.MustNewClient(postmark.Config{SenderEmail: "bad"}) })
}

func TestSendEmail_MissingToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, http.StatusOK, `{"ErrorCode":0}`, nil, &calls)

	client, err := postmark.New(postmark.Config{SenderEmail: "forms@example.edu"}, postmark.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), params())
	assert.ErrorIs(t, err, postmark.ErrMissingCredentials)
	assert.Zero(t, calls.Load())
}

func TestSendEmail_Success(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var got map[string]any
	srv := newServer(t, http.StatusOK, `{"To":"office@example.edu","MessageID":"abc","ErrorCode":0,"Message":"OK"}`, &got, &calls)

	client, err := postmark.New(postmark.Config{
		PostmarkServerToken: "token",
		SenderEmail:         "forms@example.edu",
	}, postmark.WithBaseURL(srv.URL), postmark.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.NoError(t, client.SendEmail(context.Background(), params()))
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, "forms@example.edu", got["From"])
	assert.Equal(t, "office@example.edu", got["To"])
	assert.Equal(t, "text", got["TextBody"])

	attachments, ok := got["Attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	att := attachments[0].(map[string]any)
	assert.Equal(t, "submissions.csv", att["Name"])
	assert.Equal(t, "text/csv", att["ContentType"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("a,b\n")), att["Content"])
}

func TestSendEmail_APIError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, http.StatusUnprocessableEntity, `{"ErrorCode":300,"Message":"Invalid email request"}`, nil, &calls)

	client, err := postmark.New(postmark.Config{
		PostmarkServerToken: "token",
		SenderEmail:         "forms@example.edu",
	}, postmark.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), params())
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Equal(t, int32(1), calls.Load())
}
