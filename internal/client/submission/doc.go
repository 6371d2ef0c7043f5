// Package submission runs a form through one attempt of
//
//	Editing -> Validating -> Encoding -> Submitting -> Succeeded | Failed
//
// A Pipeline owns the in-memory field values, the per-field error set and,
// for forms with images, a staging.Queue. What differs between forms
// (fields, normalizers, validation, request encoding and what to do with a
// successful response) lives behind the Flow interface; Registration and
// Grievance are the two implementations.
//
// Validation always runs again on Submit and no request is encoded or sent
// while any field is invalid. On failure the values and staged images are
// kept so the user can retry. Once Close is called the pipeline ignores
// results that arrive later.
package submission
