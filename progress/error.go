package progress

import "golang.org/x/xerrors"

var (
	// ErrInvalidIdentifier is returned when a job or destination key is
	// malformed. It is raised before the registry is consulted.
	ErrInvalidIdentifier = xerrors.New("invalid identifier")

	// ErrRegistryUnavailable is returned when the registry fails for any
	// reason other than the job being unknown.
	ErrRegistryUnavailable = xerrors.New("job registry unavailable")

	// ErrNullJobReference is returned when rendering a page for a job
	// that cannot be resolved.
	ErrNullJobReference = xerrors.New("null job reference")

	// ErrUnimplemented is returned by the finished-job rendering handoff.
	ErrUnimplemented = xerrors.New("finished job rendering is unimplemented")
)
