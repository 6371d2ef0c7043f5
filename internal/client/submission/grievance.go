package submission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/device"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

// Multipart field names of create_grievance.
const (
	PartName    = "name"
	PartMobile  = "mobile"
	PartSubject = "subject"
	PartText    = "text"
	PartUserID  = "userId"
	PartImages  = "images"
)

// Grievance is the grievance form. The address is sent as the subject and
// the description as the text.
type Grievance struct {
	opener device.MediaOpener
}

func NewGrievance(opener device.MediaOpener) *Grievance {
	return &Grievance{opener: opener}
}

func (*Grievance) Name() string { return "grievance" }

func (*Grievance) Fields() []string {
	return []string{
		validators.FieldName,
		validators.FieldPhone,
		validators.FieldAddress,
		validators.FieldDescription,
	}
}

func (*Grievance) Normalize(field, value string) string {
	if field == validators.FieldPhone {
		return validators.ClampPhone(value)
	}
	return value
}

func (*Grievance) Validate(v Values, _ time.Time) validators.Errors {
	return validators.ValidateGrievance(
		v[validators.FieldName],
		v[validators.FieldPhone],
		v[validators.FieldAddress],
		v[validators.FieldDescription],
	)
}

func (*Grievance) RequiresSession() bool { return true }

func (g *Grievance) Encode(ctx context.Context, v Values, attachments []models.MediaRef, sess *models.Session) (*client.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{PartName, v[validators.FieldName]},
		{PartMobile, v[validators.FieldPhone]},
		{PartSubject, v[validators.FieldAddress]},
		{PartText, v[validators.FieldDescription]},
		{PartUserID, sess.UserID},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}

	for i, a := range attachments {
		if err := g.writeImage(ctx, w, i, a); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return &client.Request{
		Method:      http.MethodPost,
		Path:        client.PathCreateGrievance,
		Token:       sess.Token,
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (g *Grievance) writeImage(ctx context.Context, w *multipart.Writer, i int, a models.MediaRef) error {
	name := a.Name
	if name == "" {
		name = models.AttachmentName(i)
	}
	mimeType := a.MIME
	if mimeType == "" {
		mimeType = models.DefaultImageMIME
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, PartImages, quoteEscaper.Replace(name)))
	h.Set("Content-Type", mimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	rc, err := g.opener.Open(ctx, a)
	if err != nil {
		return fmt.Errorf("attachment %d: %w", i, err)
	}
	defer rc.Close()

	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("attachment %d: %w", i, err)
	}
	return nil
}

func (*Grievance) Complete(context.Context, Values, *client.Response) error { return nil }

func (*Grievance) Messages() failure.Messages { return failure.Grievance }
