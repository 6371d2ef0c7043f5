// Package common contains shared constants and small helpers used across
// client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on authenticated calls.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"
)

// Persisted local state keys.
const (
	KeyUserToken  = "userToken"
	KeyUserData   = "userData"
	KeyUserID     = "userId"
	KeyLikedBlogs = "likedBlogs"
)

// MaxAttachments is the upper bound of images staged for one submission.
const MaxAttachments = 10
