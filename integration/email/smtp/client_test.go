package smtp_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	netsmtp "net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
)

type bufCloser struct {
	*bytes.Buffer
}

func (bufCloser) Close() error { return nil }

// recordingConn captures the SMTP conversation.
type recordingConn struct {
	authed  bool
	from    string
	to      []string
	data    bytes.Buffer
	authErr error
	closed  bool
}

func (c *recordingConn) Auth(a netsmtp.Auth) error {
	c.authed = c.authErr == nil
	return c.authErr
}
func (c *recordingConn) Mail(from string) error { c.from = from; return nil }
func (c *recordingConn) Rcpt(to string) error   { c.to = append(c.to, to); return nil }
func (c *recordingConn) Data() (io.WriteCloser, error) {
	return bufCloser{&c.data}, nil
}
func (c *recordingConn) Quit() error  { return nil }
func (c *recordingConn) Close() error { c.closed = true; return nil }

type recordingDialer struct {
	mu    sync.Mutex
	calls int
	conn  *recordingConn
	err   error
}

func (d *recordingDialer) dial(ctx context.Context, cfg smtp.Config) (smtp.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

func validConfig() smtp.Config {
	return smtp.Config{
		Host:        "smtp.example.com",
		Port:        465,
		TLSMode:     smtp.TLSModeTLS,
		SenderEmail: "forms@example.edu",
		Password:    "app-password",
		Timeout:     time.Second,
	}
}

func params() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "office@example.edu",
		Subject:  "University Contact Information Form: José",
		BodyText: "Faculty Name: José",
		BodyHTML: "<p>Faculty Name: José</p>",
		Attachments: []email.Attachment{{
			Filename:    "submissions.csv",
			ContentType: "text/csv",
			Content:     []byte("Faculty Name,University Name\nJosé,UT\n"),
		}},
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *smtp.Config)
		errMsg string
	}{
		{"empty host", func(c *smtp.Config) { c.Host = "" }, "Host is required"},
		{"zero port", func(c *smtp.Config) { c.Port = 0 }, "Port must be between"},
		{"big port", func(c *smtp.Config) { c.Port = 70000 }, "Port must be between"},
		{"bad tls mode", func(c *smtp.Config) { c.TLSMode = "ssl" }, "TLSMode"},
		{"none is not a tls mode", func(c *smtp.Config) { c.TLSMode = "none" }, "TLSMode"},
		{"bad sender", func(c *smtp.Config) { c.SenderEmail = "nope" }, "SenderEmail"},
		{"bad reply-to", func(c *smtp.Config) { c.ReplyTo = "nope" }, "ReplyTo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(&cfg)
			_, err := smtp.New(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("documented tls modes", func(t *testing.T) {
		t.Parallel()
		for _, mode := range []string{"tls", "starttls", "plain"} {
			cfg := validConfig()
			cfg.TLSMode = mode
			_, err := smtp.New(cfg)
			assert.NoError(t, err, mode)
		}
	})

	t.Run("credentials optional at construction", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SenderEmail, cfg.Password = "", ""
		_, err := smtp.New(cfg)
		assert.NoError(t, err)
	})

	assert.Panics(t, func() { smtp.MustNewClient(smtp.Config{}) })
}

func TestSendEmail_MissingCredentialsNeverDials(t *testing.T) {
	t.Parallel()

	for _, modify := range []func(c *smtp.Config){
		func(c *smtp.Config) { c.Password = "" },
		func(c *smtp.Config) { c.SenderEmail = "" },
	} {
		cfg := validConfig()
		modify(&cfg)

		d := &recordingDialer{conn: &recordingConn{}}
		client, err := smtp.New(cfg, smtp.WithDialer(d.dial))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), params())
		assert.ErrorIs(t, err, smtp.ErrMissingCredentials)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Zero(t, d.calls)
	}
}

func TestSendEmail_InvalidParamsNeverDials(t *testing.T) {
	t.Parallel()

	d := &recordingDialer{conn: &recordingConn{}}
	client, err := smtp.New(validConfig(), smtp.WithDialer(d.dial))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), email.SendEmailParams{SendTo: "office@example.edu"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
	assert.Zero(t, d.calls)
}

func TestSendEmail_Message(t *testing.T) {
	t.Parallel()

	conn := &recordingConn{}
	d := &recordingDialer{conn: conn}
	cfg := validConfig()
	cfg.ReplyTo = "help@example.edu"
	client, err := smtp.New(cfg, smtp.WithDialer(d.dial))
	require.NoError(t, err)

	require.NoError(t, client.SendEmail(context.Background(), params()))

	assert.Equal(t, 1, d.calls)
	assert.True(t, conn.authed)
	assert.True(t, conn.closed)
	assert.Equal(t, "forms@example.edu", conn.from)
	assert.Equal(t, []string{"office@example.edu"}, conn.to)

	msg, err := mail.ReadMessage(bytes.NewReader(conn.data.Bytes()))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "University Contact Information Form: José", subject)
	assert.Equal(t, "forms@example.edu", msg.Header.Get("From"))
	assert.Equal(t, "help@example.edu", msg.Header.Get("Reply-To"))
	assert.True(t, strings.HasSuffix(msg.Header.Get("Message-ID"), "@smtp.example.com>"))

	mediaType, mparams, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, mparams["boundary"])

	// First part: multipart/alternative with text then html.
	altPart, err := mr.NextPart()
	require.NoError(t, err)
	altType, altParams, err := mime.ParseMediaType(altPart.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", altType)

	ar := multipart.NewReader(altPart, altParams["boundary"])
	textPart, err := ar.NextPart()
	require.NoError(t, err)
	assert.Contains(t, textPart.Header.Get("Content-Type"), "text/plain")
	text, err := io.ReadAll(textPart) // quoted-printable is decoded by the reader
	require.NoError(t, err)
	assert.Equal(t, "Faculty Name: José", string(text))

	htmlPart, err := ar.NextPart()
	require.NoError(t, err)
	assert.Contains(t, htmlPart.Header.Get("Content-Type"), "text/html")

	// Second part: the CSV attachment.
	attPart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "submissions.csv", attPart.FileName())
	assert.Contains(t, attPart.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(attPart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(raw), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, "Faculty Name,University Name\nJosé,UT\n", string(decoded))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSendEmail_LongSubjectIsFolded(t *testing.T) {
	t.Parallel()

	conn := &recordingConn{}
	d := &recordingDialer{conn: conn}
	client, err := smtp.New(validConfig(), smtp.WithDialer(d.dial))
	require.NoError(t, err)

	p := params()
	p.Subject = "University Contact Information Form: " + strings.Repeat("李", 200)
	require.NoError(t, client.SendEmail(context.Background(), p))

	raw := conn.data.String()
	for _, line := range strings.Split(raw, "\r\n") {
		assert.LessOrEqual(t, len(line), 998, "line too long: %.40q", line)
	}

	head, _, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	inSubject := false
	for _, line := range strings.Split(head, "\r\n") {
		switch {
		case strings.HasPrefix(line, "Subject:"):
			inSubject = true
		case inSubject && strings.HasPrefix(line, " "):
		default:
			inSubject = false
		}
		if inSubject {
			assert.LessOrEqual(t, len(line), 78, "subject line: %q", line)
		}
	}

	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, p.Subject, subject)
}

func TestSendEmail_TransportErrors(t *testing.T) {
	t.Parallel()

	t.Run("dial failure", func(t *testing.T) {
		t.Parallel()
		refused := errors.New("connection refused")
		d := &recordingDialer{err: refused}
		client, err := smtp.New(validConfig(), smtp.WithDialer(d.dial))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), params())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, refused)
		assert.Equal(t, 1, d.calls, "no retry")
	})

	t.Run("auth failure", func(t *testing.T) {
		t.Parallel()
		badAuth := errors.New("535 bad credentials")
		conn := &recordingConn{authErr: badAuth}
		d := &recordingDialer{conn: conn}
		client, err := smtp.New(validConfig(), smtp.WithDialer(d.dial))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), params())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, badAuth)
		assert.Empty(t, conn.from)
		assert.True(t, conn.closed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		d := &recordingDialer{conn: &recordingConn{}}
		client, err := smtp.New(validConfig(), smtp.WithDialer(d.dial))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = client.SendEmail(ctx, params())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, d.calls)
	})
}

func TestDefaultDialer_ConnectionRefused(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = addr.Port

	_, err = smtp.DefaultDialer(context.Background(), cfg)
	assert.Error(t, err)
}
