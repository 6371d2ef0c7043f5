// Package client is the REST client for the grievance desk backend.
//
// # Overview
//
// API lists one typed method per backend endpoint plus Do, which sends an
// already encoded Request (used by the submission pipeline for multipart and
// JSON form posts). HTTPClient is the net/http implementation: it resolves
// paths against a base URL, adds the bearer token and an X-Request-ID header,
// and decodes JSON responses into explicit result types.
//
// # Error Handling
//
// Transport outcomes are reported with values callers match using errors.Is
// and errors.As:
//
//   - ErrUnavailable: no response was received (dial failure, timeout).
//   - *StatusError: the server answered with a non-2xx status; Message holds
//     the "message" field of the JSON body when present.
//   - ErrMalformedResponse: a 2xx body did not have the expected shape.
//
// Classification into user-facing kinds happens one layer up, in the failure
// package.
package client
