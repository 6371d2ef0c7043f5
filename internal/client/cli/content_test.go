package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogs_MarksLiked(t *testing.T) {
	a, out := newTestApp(&fakeSessions{}, &fakeDoer{})
	a.content = &fakeContent{blogs: []models.BlogView{
		{Blog: models.Blog{ID: "b1", Heading: "Water supply", Slug: "water"}, Liked: true},
		{Blog: models.Blog{ID: "b2", Heading: "Roads", Slug: "roads"}},
	}}

	require.NoError(t, a.Blogs(context.Background()))
	assert.Contains(t, out.String(), "[♥] Water supply  slug=water id=b1")
	assert.Contains(t, out.String(), "[ ] Roads  slug=roads id=b2")
}

func TestBlog_ShowsSectionsPhotosAndShareText(t *testing.T) {
	a, out := newTestApp(&fakeSessions{}, &fakeDoer{})
	a.content = &fakeContent{blog: &models.BlogView{Blog: models.Blog{
		ID:          "b1",
		Heading:     "Water supply",
		MainContent: "Main body",
		Slug:        "water",
		SubContents: []models.SubContent{
			{Heading: "Step one", Content: "Call", Photo: &models.PhotoRef{ID: "p1"}},
			{Heading: "Step two", Content: "Wait"},
		},
	}}}

	require.NoError(t, a.Blog(context.Background(), "water"))
	s := out.String()
	assert.Contains(t, s, "Main body")
	assert.Contains(t, s, "## Step one")
	assert.Contains(t, s, "Photo: http://srv/photo/p1")
	assert.Contains(t, s, "share:water")
}

func TestLike_Toggles(t *testing.T) {
	fc := &fakeContent{}
	a, out := newTestApp(&fakeSessions{}, &fakeDoer{})
	a.content = fc

	require.NoError(t, a.Like(context.Background(), "b1"))
	require.NoError(t, a.Like(context.Background(), "b1"))
	assert.Equal(t, []string{"b1", "b1"}, fc.toggled)
	assert.Contains(t, out.String(), "Liked.")
	assert.Contains(t, out.String(), "Like removed.")
}

func TestHome(t *testing.T) {
	a, out := newTestApp(&fakeSessions{}, &fakeDoer{})
	a.content = &fakeContent{home: &models.Home{
		Categories: []models.Category{{ID: "c1", Name: "Water", Slug: "water"}},
		Sliders:    []models.Slider{{ID: "s1", Title: "Monsoon drive"}},
	}}

	require.NoError(t, a.Home(context.Background()))
	s := out.String()
	assert.Contains(t, s, "Water (water)")
	assert.Contains(t, s, "Monsoon drive")
	assert.Contains(t, s, "No blogs yet.")
}

func TestGrievances_ListAndError(t *testing.T) {
	a, out := newTestApp(signedIn(), &fakeDoer{})
	a.content = &fakeContent{list: []models.Grievance{{Subject: "12 Main St", Text: "Pothole"}}}
	require.NoError(t, a.Grievances(context.Background()))
	assert.Contains(t, out.String(), "1. 12 Main St")

	fe := &failure.Error{Kind: failure.ErrNetwork, Message: failure.DefaultNetworkMessage}
	a.content = &fakeContent{err: fe}
	require.ErrorIs(t, a.Grievances(context.Background()), failure.ErrNetwork)
}

func TestProfile_AppliesEdits(t *testing.T) {
	fs := signedIn()
	a, out := newTestApp(fs, &fakeDoer{})

	stubScript(t, "", "jane doe", "loc", "", "01/01/1990", "", "")

	require.NoError(t, a.Profile(context.Background()))
	require.NotNil(t, fs.upd)
	require.NotNil(t, fs.upd.Name)
	assert.Equal(t, "Jane Doe", *fs.upd.Name)
	require.NotNil(t, fs.upd.Address)
	assert.Equal(t, "12 Main St", *fs.upd.Address)
	assert.Nil(t, fs.upd.Gender)
	require.NotNil(t, fs.upd.DateOfBirth)
	assert.Equal(t, "01/01/1990", *fs.upd.DateOfBirth)
	assert.Nil(t, fs.upd.MaritalStatus)
	assert.Nil(t, fs.upd.ProfileImageRef)
	assert.Contains(t, out.String(), "Profile updated.")
}

func TestProfile_RejectedUpdate(t *testing.T) {
	fs := signedIn()
	fs.updErr = failure.Invalid(validators.Errors{validators.FieldDateOfBirth: validators.MsgDateOfBirth})
	a, out := newTestApp(fs, &fakeDoer{})

	stubScript(t, "", "", "", "", "01/01/2999", "", "")

	err := a.Profile(context.Background())
	require.ErrorIs(t, err, failure.ErrValidation)
	assert.Equal(t, validators.MsgDateOfBirth, userMessage(err))
	assert.NotContains(t, out.String(), "Profile updated.")
}

func TestWhoAmI(t *testing.T) {
	a, out := newTestApp(signedIn(), &fakeDoer{})
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "john@example.com")

	a, _ = newTestApp(&fakeSessions{}, &fakeDoer{})
	assert.ErrorIs(t, a.WhoAmI(context.Background()), failure.ErrAuth)
}
