package frontend

import (
	"context"
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/frontend"
	"github.com/moratsam/jobprogress/jobstore"
	"github.com/moratsam/jobprogress/progress"
)

// JobRegistryAPI defines the API methods for looking up jobs in the job
// registry.
type JobRegistryAPI interface {
	FindJob(key jobstore.Key) (*jobstore.Job, error)
}

// Config encapsulates the settings for configuring the front-end service.
type Config struct {
	// An API for looking up jobs in the job registry.
	JobRegistryAPI JobRegistryAPI

	// The address to listen for incoming requests.
	ListenAddr string

	// How polls for unknown jobs are answered.
	MissingPolicy progress.MissingPolicy

	// The registerer for the front-end metrics. If not specified, the
	// default prometheus registerer will be used instead.
	Registerer prometheus.Registerer

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.JobRegistryAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("job registry API has not been provided"))
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service implements the front-end component for the jobprogress project.
type Service struct {
	cfg      Config
	frontend *frontend.Frontend
}

// NewService creates a new front-end service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("front-end service: config validation failed: %w", err)
	}

	fe, err := frontend.NewFrontend(frontend.Config{
		JobRegistryAPI: cfg.JobRegistryAPI,
		ListenAddr:     cfg.ListenAddr,
		MissingPolicy:  cfg.MissingPolicy,
		Registerer:     cfg.Registerer,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, xerrors.Errorf("front-end service: new frontend creation failed: %w", err)
	}

	return &Service{
		cfg:      cfg,
		frontend: fe,
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "front-end" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithFields(logrus.Fields{
		"addr":           svc.cfg.ListenAddr,
		"missing_policy": svc.cfg.MissingPolicy.String(),
	}).Info("starting front-end server")
	return svc.frontend.Serve(ctx)
}
