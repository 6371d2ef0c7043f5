// Package cli provides the interactive grievance desk terminal client.
//
// It wires configuration, local storage, the REST client and the
// application services into a REPL whose commands play the part of the
// mobile screens: sign up and sign in, the home feed, blogs with likes, the
// profile, and grievance submission with image attachments.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, NewApp and runREPL for details.
package cli
