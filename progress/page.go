package progress

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Page holds the data for the human-facing rendering of a job.
type Page struct {
	// Title is the job description.
	Title string

	// Section is the destination key.
	Section string

	// Percent is the truncated completion percentage.
	Percent int

	// Finished is set once the job has an end time.
	Finished bool

	// Found is false when the job could not be resolved.
	Found bool
}

// Page resolves the job identified by jobID into the data needed to render
// it for a human. When the job cannot be found, Page returns a "job not
// found" page together with an error wrapping ErrNullJobReference so that
// callers can still display something meaningful.
func (r *Resolver) Page(jobID, dstKey string) (Page, error) {
	jobKey, dest, err := parseKeys(jobID, dstKey)
	if err != nil {
		return Page{}, err
	}

	out, err := lookupKey(r.cfg.Registry, jobKey)
	if err != nil {
		return Page{}, err
	}

	if out.State == NotFound {
		return Page{
			Title:   "Job not found",
			Section: fmt.Sprintf("No job is registered under %s.", jobKey),
		}, xerrors.Errorf("render job %s: %w", jobKey, ErrNullJobReference)
	}

	return Page{
		Title:    out.Job.Description,
		Section:  string(dest),
		Percent:  PercentComplete(out.Fraction()),
		Finished: out.State == Finished,
		Found:    true,
	}, nil
}
