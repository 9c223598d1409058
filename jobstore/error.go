package jobstore

import "golang.org/x/xerrors"

var (
	// ErrInvalidKey is returned when a key is not syntactically valid.
	ErrInvalidKey = xerrors.New("invalid key")

	// ErrUnknownJob is returned when no job is registered under a key.
	ErrUnknownJob = xerrors.New("unknown job")

	// ErrInvalidProgress is returned when upserting a job whose progress
	// fraction lies outside [0, 1].
	ErrInvalidProgress = xerrors.New("invalid progress fraction")

	// ErrJobFinished is returned when attempting to update a job
	// whose end time has already been set.
	ErrJobFinished = xerrors.New("job already finished")
)
