package smtp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/dmitrymomot/contactform/core/email"
)

// header order is fixed so messages are reproducible.
var headerOrder = []string{"From", "To", "Reply-To", "Subject", "Date", "Message-ID", "MIME-Version", "Content-Type"}

// buildMessage renders params as multipart/mixed holding a multipart/alternative
// body (text/plain, text/html) followed by the attachments.
func buildMessage(from, replyTo, messageID string, now time.Time, params email.SendEmailParams) ([]byte, error) {
	var body bytes.Buffer
	mixed := multipart.NewWriter(&body)

	var alt bytes.Buffer
	altWriter := multipart.NewWriter(&alt)
	if params.BodyText != "" {
		if err := writeQuotedPart(altWriter, "text/plain; charset=UTF-8", params.BodyText); err != nil {
			return nil, err
		}
	}
	if params.BodyHTML != "" {
		if err := writeQuotedPart(altWriter, "text/html; charset=UTF-8", params.BodyHTML); err != nil {
			return nil, err
		}
	}
	if err := altWriter.Close(); err != nil {
		return nil, err
	}

	altPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + altWriter.Boundary()},
	})
	if err != nil {
		return nil, err
	}
	if _, err := altPart.Write(alt.Bytes()); err != nil {
		return nil, err
	}

	for _, a := range params.Attachments {
		if err := writeAttachment(mixed, a); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, err
	}

	headers := map[string]string{
		"From":         from,
		"To":           params.SendTo,
		"Subject":      foldHeader("Subject", mime.QEncoding.Encode("UTF-8", params.Subject)),
		"Date":         now.Format(time.RFC1123Z),
		"Message-ID":   messageID,
		"MIME-Version": "1.0",
		"Content-Type": "multipart/mixed; boundary=" + mixed.Boundary(),
	}
	if replyTo != "" {
		headers["Reply-To"] = replyTo
	}

	var msg bytes.Buffer
	for _, k := range headerOrder {
		if v, ok := headers[k]; ok {
			fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
		}
	}
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

// maxHeaderLine is the recommended physical line length for header fields.
const maxHeaderLine = 78

// foldHeader breaks value at spaces onto continuation lines so no physical
// line of the field exceeds maxHeaderLine. Encoded words from mime.QEncoding
// are at most 75 octets and space separated, so an encoded value always fits.
// A single word longer than the limit is kept whole.
func foldHeader(name, value string) string {
	var b strings.Builder
	lineLen := len(name) + len(": ")
	for i, word := range strings.Split(value, " ") {
		switch {
		case i == 0 && lineLen+len(word) > maxHeaderLine,
			i > 0 && lineLen+1+len(word) > maxHeaderLine:
			b.WriteString("\r\n ")
			lineLen = 1
		case i > 0:
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

func writeQuotedPart(w *multipart.Writer, contentType, content string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, content); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(w *multipart.Writer, a email.Attachment) error {
	mediaType, typeParams, err := mime.ParseMediaType(a.ContentType)
	if err != nil {
		mediaType, typeParams = "application/octet-stream", map[string]string{}
	}
	typeParams["name"] = a.Filename

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(mediaType, typeParams)},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return err
	}

	enc := base64.StdEncoding.EncodeToString(a.Content)
	for len(enc) > 76 {
		if _, err := io.WriteString(part, enc[:76]+"\r\n"); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err = io.WriteString(part, enc+"\r\n")
	return err
}
