package jobstore

import (
	"context"
	"io/ioutil"
	"net"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"

	js "github.com/moratsam/jobprogress/jobstore"
	jsapi "github.com/moratsam/jobprogress/jobstoreapi"
	"github.com/moratsam/jobprogress/jobstoreapi/proto"
)

// Config encapsulates the settings for configuring the job store gRPC service.
type Config struct {
	// The job store to expose.
	JobStore js.JobStore

	// The address to listen for incoming gRPC connections.
	ListenAddr string

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.JobStore == nil {
		err = multierror.Append(err, xerrors.Errorf("job store has not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Service exposes a job store to the execution engine and to remote
// front-ends over gRPC.
type Service struct {
	cfg Config
}

// NewService creates a new job store service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("job store service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "job-store" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := grpc.NewServer()
	proto.RegisterJobRegistryServer(srv, jsapi.NewJobStoreServer(svc.cfg.JobStore))

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	svc.cfg.Logger.WithField("addr", l.Addr().String()).Info("listening for gRPC connections")
	if err = srv.Serve(l); err == grpc.ErrServerStopped {
		// The context was cancelled before the server got to accept.
		err = nil
	}
	return err
}
