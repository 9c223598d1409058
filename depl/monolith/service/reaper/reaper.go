package reaper

import (
	"context"
	"io/ioutil"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/moratsam/jobprogress/depl/monolith/service/reaper JobStoreAPI

// JobStoreAPI defines the API method for removing finished jobs from the
// job registry.
type JobStoreAPI interface {
	RemoveFinishedBefore(t time.Time) (uint64, error)
}

// Config encapsulates the settings for configuring the reaper service.
type Config struct {
	// An API for removing finished jobs.
	JobStoreAPI JobStoreAPI

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The time between subsequent reaper passes.
	Interval time.Duration

	// How long a finished job stays in the registry.
	Retention time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.JobStoreAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("job store API has not been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Interval <= 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for reaper interval"))
	}
	if cfg.Retention < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for retention"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service periodically removes finished jobs from the job registry. Polls
// for a removed job are answered as if the job had just finished.
type Service struct {
	cfg Config
}

// NewService creates a new reaper service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("reaper service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "reaper" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithFields(logrus.Fields{
		"interval":  svc.cfg.Interval.String(),
		"retention": svc.cfg.Retention.String(),
	}).Info("starting reaper")
	defer svc.cfg.Logger.Info("stopped reaper")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.Interval):
			svc.reap()
		}
	}
}

func (svc *Service) reap() {
	cutoff := svc.cfg.Clock.Now().Add(-svc.cfg.Retention)
	removed, err := svc.cfg.JobStoreAPI.RemoveFinishedBefore(cutoff)
	if err != nil {
		// The next pass will pick up whatever this one missed.
		svc.cfg.Logger.WithField("err", err).Warn("reaper pass failed")
		return
	}
	svc.cfg.Logger.WithFields(logrus.Fields{
		"removed": removed,
		"cutoff":  cutoff,
	}).Info("reaper pass complete")
}
