package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUser_IdentifierPrefersID(t *testing.T) {
	require.Equal(t, "a", User{ID: "a", MongoID: "b"}.Identifier())
	require.Equal(t, "b", User{MongoID: "b"}.Identifier())
	require.Equal(t, "", User{}.Identifier())
}

func TestUser_DecodesBothIDShapes(t *testing.T) {
	var login, register User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","name":"John Doe"}`), &login))
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"u2","email":"a@b.com"}`), &register))

	require.Equal(t, "u1", login.Profile().ID)
	require.Equal(t, "John Doe", login.Profile().Name)
	require.Equal(t, "u2", register.Profile().ID)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.False(t, (&Session{}).Expired(now), "unknown expiry is never expired")
	require.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	require.True(t, (&Session{ExpiresAt: now}).Expired(now))
}

func TestInferImageMIME(t *testing.T) {
	cases := map[string]string{
		"/tmp/a.png":             "image/png",
		"file:///sdcard/B.JPG":   "image/jpeg",
		"/tmp/c.gif?size=large":  "image/gif",
		"/tmp/noext":             DefaultImageMIME,
		"/tmp/notes.txt":         DefaultImageMIME,
		"content://media/ext/42": DefaultImageMIME,
	}
	for in, want := range cases {
		require.Equal(t, want, InferImageMIME(in), in)
	}
}

func TestAttachmentName(t *testing.T) {
	require.Equal(t, "image_0.jpg", AttachmentName(0))
	require.Equal(t, "image_9.jpg", AttachmentName(9))
}
