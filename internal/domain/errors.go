package domain

import "errors"

var (
	// ErrMissingDatabase is returned when no database name was configured.
	ErrMissingDatabase = errors.New("missing database")
	// ErrMissingUser is returned when no user identity could be resolved.
	ErrMissingUser = errors.New("missing user")
	// ErrBinaryNotFound indicates a required external program is not installed.
	ErrBinaryNotFound = errors.New("binary not found")
	// ErrInvalidRemote indicates a remote host spec without a host part.
	ErrInvalidRemote = errors.New("invalid remote host")
	// ErrInvalidSpoof indicates a spoof spec without an address part.
	ErrInvalidSpoof = errors.New("invalid spoof identity")
	// ErrNotApplicable marks a query that cannot run on this server, e.g. a missing table.
	ErrNotApplicable = errors.New("query not applicable")
)
