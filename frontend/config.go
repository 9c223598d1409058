package frontend

import (
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/progress"
)

// Config encapsulates the settings for configuring a frontend instance.
type Config struct {
	// An API for looking up jobs in the job registry.
	JobRegistryAPI JobRegistryAPI

	// The address to listen for incoming requests.
	ListenAddr string

	// How polls for unknown jobs are answered.
	MissingPolicy progress.MissingPolicy

	// The registerer for the frontend metrics. If not specified, the
	// metrics are registered with a private registry.
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
		cfg.Registerer = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}
