package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/device"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/submission"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	name, filename, contentType, body string
}

func readParts(t *testing.T, req *client.Request) []part {
	t.Helper()
	_, params, err := mime.ParseMediaType(req.ContentType)
	require.NoError(t, err)

	var out []part
	r := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		out = append(out, part{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(b)})
	}
}

func TestGrievance_RequiresSession(t *testing.T) {
	api := &fakeDoer{}
	a, _ := newTestApp(&fakeSessions{}, api)
	stubScript(t, "")

	err := a.Grievance(context.Background())
	require.ErrorIs(t, err, failure.ErrAuth)
	assert.Equal(t, failure.NoSessionMessage, userMessage(err))
	assert.Empty(t, api.reqs)
}

func TestGrievance_SubmitsProfileValuesAndImages(t *testing.T) {
	api := &fakeDoer{}
	a, out := newTestApp(signedIn(), api)
	a.picker = fakePicker{
		library: []models.MediaRef{models.NewMediaRef("/tmp/a.png"), models.NewMediaRef("/tmp/b.jpg")},
		capture: models.NewMediaRef("/tmp/c.jpg"),
	}

	stubScript(t, "",
		"", "", "", // keep name, phone and the located address
		"Streetlight broken",
		"l", "c", "r 0", "d",
	)

	require.NoError(t, a.Grievance(context.Background()))
	require.Len(t, api.reqs, 1)

	req := api.reqs[0]
	assert.Equal(t, client.PathCreateGrievance, req.Path)
	assert.Equal(t, "tok", req.Token)

	parts := readParts(t, req)
	fields := map[string]string{}
	var images []part
	for _, p := range parts {
		if p.name == submission.PartImages {
			images = append(images, p)
			continue
		}
		fields[p.name] = p.body
	}
	assert.Equal(t, "John Doe", fields[submission.PartName])
	assert.Equal(t, "9876543210", fields[submission.PartMobile])
	assert.Equal(t, "12 Main St", fields[submission.PartSubject])
	assert.Equal(t, "Streetlight broken", fields[submission.PartText])
	assert.Equal(t, "u1", fields[submission.PartUserID])

	require.Len(t, images, 2)
	assert.Equal(t, "image_0.jpg", images[0].filename)
	assert.Equal(t, "data:/tmp/b.jpg", images[0].body)
	assert.Equal(t, "image_1.jpg", images[1].filename)
	assert.Equal(t, "data:/tmp/c.jpg", images[1].body)

	assert.Contains(t, out.String(), "Submitting...")
	assert.Contains(t, out.String(), "Grievance submitted successfully!")
}

func TestGrievance_CapacityAndPickerErrors(t *testing.T) {
	refs := make([]models.MediaRef, 11)
	for i := range refs {
		refs[i] = models.NewMediaRef("/tmp/x.jpg")
	}
	api := &fakeDoer{}
	a, out := newTestApp(signedIn(), api)
	a.picker = fakePicker{library: refs, capErr: device.ErrPermissionDenied}

	stubScript(t, "", "", "", "", "text", "l", "c", "r 5", "zap", "d")

	require.NoError(t, a.Grievance(context.Background()))
	require.Len(t, api.reqs, 1)
	assert.Empty(t, filterImages(readParts(t, api.reqs[0])))

	s := out.String()
	assert.Contains(t, s, "You can only upload up to 10 images.")
	assert.Contains(t, s, "Permission to access images was denied.")
	assert.Contains(t, s, "out of range")
	assert.Contains(t, s, "Unknown option: zap")
}

func TestGrievance_ValidationReprompts(t *testing.T) {
	fs := signedIn()
	fs.sess.Profile.Phone = ""
	api := &fakeDoer{}
	a, out := newTestApp(fs, api)

	stubScript(t, "", "", "", "", "", "d", "9876543210", "Pothole")

	require.NoError(t, a.Grievance(context.Background()))
	require.Len(t, api.reqs, 1)
	assert.Contains(t, out.String(), validators.MsgPhoneRequired)
	assert.Contains(t, out.String(), validators.MsgDescriptionReq)
}

func TestGrievance_ServerFailureKeepsForm(t *testing.T) {
	api := &fakeDoer{fn: func(int) (*client.Response, error) {
		return nil, &client.StatusError{Status: 500}
	}}
	a, out := newTestApp(signedIn(), api)

	stubScript(t, "", "", "", "", "text", "d", "n")

	require.NoError(t, a.Grievance(context.Background()))
	require.Len(t, api.reqs, 1)
	assert.Contains(t, out.String(), failure.MsgGrievanceFailed)
	assert.NotContains(t, out.String(), "Grievance submitted successfully!")
}

func filterImages(parts []part) []part {
	var out []part
	for _, p := range parts {
		if p.name == submission.PartImages {
			out = append(out, p)
		}
	}
	return out
}
