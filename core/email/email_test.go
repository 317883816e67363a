package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "office@example.edu",
		Subject:  "University Contact Information Form: Jane",
		BodyHTML: "<p>hi</p>",
		BodyText: "hi",
		Tag:      "intake",
		Attachments: []email.Attachment{{
			Filename:    "submissions.csv",
			ContentType: "text/csv",
			Content:     []byte("a,b\n"),
		}},
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(p *email.SendEmailParams)
		wantErr bool
		field   string
	}{
		{"valid", func(p *email.SendEmailParams) {}, false, ""},
		{"text only", func(p *email.SendEmailParams) { p.BodyHTML = "" }, false, ""},
		{"missing recipient", func(p *email.SendEmailParams) { p.SendTo = "" }, true, "send_to"},
		{"bad recipient", func(p *email.SendEmailParams) { p.SendTo = "nope" }, true, "send_to"},
		{"missing subject", func(p *email.SendEmailParams) { p.Subject = " " }, true, "subject"},
		{"multiline subject", func(p *email.SendEmailParams) { p.Subject = "a\r\nBcc: x@y.org" }, true, "single line"},
		{"no body", func(p *email.SendEmailParams) { p.BodyHTML, p.BodyText = "", "" }, true, "body"},
		{"unnamed attachment", func(p *email.SendEmailParams) { p.Attachments[0].Filename = "" }, true, "attachments.0.filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tt.modify(&p)
			err := p.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	sender := email.NewDevSender(dir)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 4)

	var metaFile string
	for _, n := range names {
		if strings.HasSuffix(n, ".json") {
			metaFile = n
		}
	}
	require.NotEmpty(t, metaFile)

	raw, err := os.ReadFile(filepath.Join(dir, metaFile))
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "office@example.edu", meta["send_to"])
	assert.Equal(t, "intake", meta["tag"])
	assert.Len(t, meta["attachments"], 1)
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := email.NewDevSender(dir).SendEmail(context.Background(), email.SendEmailParams{})
	assert.ErrorIs(t, err, email.ErrInvalidParams)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDevSender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := email.NewDevSender(t.TempDir()).SendEmail(ctx, validParams())
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}
