package progress

import (
	"io/ioutil"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/jobstore"
)

// DefaultRedirectTarget is the endpoint finished jobs are redirected to
// when no other target is configured.
const DefaultRedirectTarget = "/inspect.json"

// MissingPolicy controls how jobs that cannot be found are reported.
type MissingPolicy uint8

const (
	// MissingIsFinished reports absent jobs exactly like finished ones.
	// A reaped job and a job that never existed cannot be told apart.
	MissingIsFinished MissingPolicy = iota

	// MissingIsDistinct reports absent jobs with a Missing response.
	MissingIsDistinct
)

// ParseMissingPolicy maps "finished" and "distinct" to a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "finished":
		return MissingIsFinished, nil
	case "distinct":
		return MissingIsDistinct, nil
	default:
		return 0, xerrors.Errorf("unsupported missing job policy: %q", s)
	}
}

func (p MissingPolicy) String() string {
	if p == MissingIsDistinct {
		return "distinct"
	}
	return "finished"
}

// Config encapsulates the settings for configuring a Resolver.
type Config struct {
	// The registry to look jobs up from.
	Registry Registry

	// The endpoint a Redirect points to. If not specified,
	// DefaultRedirectTarget will be used instead.
	RedirectTarget string

	// How absent jobs are reported.
	MissingPolicy MissingPolicy

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Registry == nil {
		err = multierror.Append(err, xerrors.Errorf("job registry has not been provided"))
	}
	if cfg.RedirectTarget == "" {
		cfg.RedirectTarget = DefaultRedirectTarget
	}
	if cfg.MissingPolicy > MissingIsDistinct {
		err = multierror.Append(err, xerrors.Errorf("invalid missing job policy"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Resolver classifies the current state of a job into a Response. It keeps
// no state between calls; every request reads the job afresh.
type Resolver struct {
	cfg Config
}

// NewResolver creates a new resolver with the specified config.
func NewResolver(cfg Config) (*Resolver, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("progress resolver: config validation failed: %w", err)
	}
	return &Resolver{cfg: cfg}, nil
}

// Resolve looks up the job identified by jobID and returns the response a
// polling client should receive. dstKey names the artifact the job
// produces and is echoed back on redirects.
func (r *Resolver) Resolve(jobID, dstKey string) (Response, error) {
	jobKey, dest, err := parseKeys(jobID, dstKey)
	if err != nil {
		return nil, err
	}

	out, err := lookupKey(r.cfg.Registry, jobKey)
	if err != nil {
		r.cfg.Logger.WithFields(logrus.Fields{
			"job": jobKey,
			"err": err,
		}).Warn("job lookup failed")
		return nil, err
	}
	return r.ResolveOutcome(out, dest), nil
}

// ResolveOutcome maps a lookup outcome to a response.
func (r *Resolver) ResolveOutcome(out Outcome, dest jobstore.Key) Response {
	switch out.State {
	case Running:
		return Poll{Progress: PercentComplete(out.Job.ProgressFraction()), Max: MaxProgress}
	case NotFound:
		if r.cfg.MissingPolicy == MissingIsDistinct {
			return Missing{Job: out.Key}
		}
	}
	return RedirectTo(r.cfg.RedirectTarget, out.Key, dest)
}

// Done renders the output of a finished job. Handing off to a result
// renderer is not supported yet, so after validating its arguments Done
// always fails with ErrUnimplemented.
func (r *Resolver) Done(jobID, dstKey string) (Response, error) {
	jobKey, dest, err := parseKeys(jobID, dstKey)
	if err != nil {
		return nil, err
	}
	return nil, xerrors.Errorf("render job %s into %s: %w", jobKey, dest, ErrUnimplemented)
}

// PercentComplete converts a completion fraction to a percentage by
// truncation, so 0.999 reports 99. The result is clamped to [0, 100].
func PercentComplete(fraction float64) int {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return MaxProgress
	}
	return int(MaxProgress * fraction)
}

func parseKeys(jobID, dstKey string) (jobstore.Key, jobstore.Key, error) {
	jobKey, err := jobstore.ParseKey(jobID)
	if err != nil {
		return "", "", xerrors.Errorf("job %q: %w: %v", jobID, ErrInvalidIdentifier, err)
	}
	dest, err := jobstore.ParseKey(dstKey)
	if err != nil {
		return "", "", xerrors.Errorf("dst_key %q: %w: %v", dstKey, ErrInvalidIdentifier, err)
	}
	return jobKey, dest, nil
}
