package progress

import (
	"encoding/json"

	"github.com/moratsam/jobprogress/jobstore"
)

// Status is the wire tag of a Response variant.
type Status string

const (
	StatusRedirect Status = "redirect"
	StatusPoll     Status = "poll"
	StatusNotFound Status = "not_found"
)

// MaxProgress is the upper bound of the progress reported by a Poll.
const MaxProgress = 100

// Response is implemented by the variants the resolver can produce:
// Redirect, Poll and Missing.
type Response interface {
	Status() Status

	// Restricts implementations to this package.
	isResponse()
}

// Redirect instructs the client that the job is over and that the result
// identified by Dest can be fetched from Target.
type Redirect struct {
	Target string
	Job    jobstore.Key
	Dest   jobstore.Key
}

// RedirectTo returns a Redirect that sends a client to target with the
// job and destination keys as parameters.
func RedirectTo(target string, job, dest jobstore.Key) Redirect {
	return Redirect{Target: target, Job: job, Dest: dest}
}

func (Redirect) Status() Status { return StatusRedirect }
func (Redirect) isResponse()    {}

// Params returns the query parameters the client should pass to Target.
func (r Redirect) Params() map[string]string {
	return map[string]string{
		"job":     string(r.Job),
		"dst_key": string(r.Dest),
	}
}

func (r Redirect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status Status            `json:"status"`
		Target string            `json:"target"`
		Params map[string]string `json:"params"`
	}{StatusRedirect, r.Target, r.Params()})
}

// Poll reports the progress of a running job. Clients are expected to
// poll again.
type Poll struct {
	Progress int
	Max      int
}

func (Poll) Status() Status { return StatusPoll }
func (Poll) isResponse()    {}

func (p Poll) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status   Status      `json:"status"`
		Progress int         `json:"progress"`
		Max      int         `json:"max"`
		Body     interface{} `json:"body"`
	}{StatusPoll, p.Progress, p.Max, nil})
}

// Missing reports that no job is registered under the requested key. It
// is only produced when absent jobs are not treated as finished.
type Missing struct {
	Job jobstore.Key
}

func (Missing) Status() Status { return StatusNotFound }
func (Missing) isResponse()    {}

func (m Missing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status Status            `json:"status"`
		Params map[string]string `json:"params"`
	}{StatusNotFound, map[string]string{"job": string(m.Job)}})
}
