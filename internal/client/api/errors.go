package api

import "errors"

// Sentinel errors mapped from HTTP statuses. Callers branch on these with
// errors.Is; everything else arrives as a wrapped transport error.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrMaintenance  = errors.New("server is under maintenance")
)
