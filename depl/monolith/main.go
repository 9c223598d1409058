package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/depl/monolith/service"
	"github.com/moratsam/jobprogress/depl/monolith/service/frontend"
	"github.com/moratsam/jobprogress/depl/monolith/service/jobstore"
	"github.com/moratsam/jobprogress/depl/monolith/service/reaper"
	js "github.com/moratsam/jobprogress/jobstore"
	cdbjs "github.com/moratsam/jobprogress/jobstore/cdb"
	memjs "github.com/moratsam/jobprogress/jobstore/memory"
	"github.com/moratsam/jobprogress/progress"
)

var (
	appName = "jobprogress"
	appSha  = "populated-later"
)

func main() {
	// Expose pprof at localhost:6060/debug/pprof
	go func() {
		_ = http.ListenAndServe(":6060", nil)
	}()

	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := runMain(logger); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func runMain(logger *logrus.Entry) error {
	svcGroup, err := setupServices(logger)
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Run(ctx)
}

func setupServices(logger *logrus.Entry) (service.Group, error) {
	var (
		frontendCfg frontend.Config
		jobStoreCfg jobstore.Config
		reaperCfg   reaper.Config
	)

	// frontend
	flag.StringVar(&frontendCfg.ListenAddr, "frontend-listen-addr", ":48855", "The address to listen for incoming front-end requests")
	missingPolicy := flag.String("missing-job-policy", "finished", "How polls for unknown jobs are answered. Supported values are 'finished' (redirect to the result) and 'distinct' (report not_found)")

	// job store
	flag.StringVar(&jobStoreCfg.ListenAddr, "grpc-listen-addr", ":48856", "The address to listen for incoming job store gRPC connections")
	jobStoreURI := flag.String("job-store-uri", "in-memory://", "The URI for connecting to the job store (supported URIs: in-memory://, postgresql://user@host:26257/jobprogress?sslmode=disable) Defaults to in-memory")

	// reaper
	flag.DurationVar(&reaperCfg.Interval, "reaper-interval", 5*time.Minute, "The time between subsequent passes that remove finished jobs")
	flag.DurationVar(&reaperCfg.Retention, "reaper-retention", 1*time.Hour, "How long finished jobs are kept in the job store")

	metricsAddr := flag.String("metrics-listen-addr", ":31933", "The address for exposing prometheus metrics")

	flag.Parse()

	policy, err := progress.ParseMissingPolicy(*missingPolicy)
	if err != nil {
		logger.WithField("err", err).Error("parse missing job policy")
		return nil, err
	}

	// Retrieve a suitable job store implementation and plug it into the service configurations.
	jobStore, err := getJobStore(*jobStoreURI, logger)
	if err != nil {
		logger.WithField("err", err).Error("get job store")
		return nil, err
	}

	// Expose prometheus at <metrics-listen-addr>/metrics
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logger.WithField("err", err).Warn("metrics listener exited")
		}
	}()

	var svc service.Service
	var svcGroup service.Group

	frontendCfg.JobRegistryAPI = jobStore
	frontendCfg.MissingPolicy = policy
	frontendCfg.Logger = logger.WithField("service", "front-end")
	if svc, err = frontend.NewService(frontendCfg); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	jobStoreCfg.JobStore = jobStore
	jobStoreCfg.Logger = logger.WithField("service", "job-store")
	if svc, err = jobstore.NewService(jobStoreCfg); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	reaperCfg.JobStoreAPI = jobStore
	reaperCfg.Logger = logger.WithField("service", "reaper")
	if svc, err = reaper.NewService(reaperCfg); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	return svcGroup, nil
}

func getJobStore(jobStoreURI string, logger *logrus.Entry) (js.JobStore, error) {
	if jobStoreURI == "" {
		return nil, xerrors.Errorf("job store URI must be specified with --job-store-uri")
	}

	uri, err := url.Parse(jobStoreURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse job store URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory job store")
		return memjs.NewInMemoryJobStore(), nil
	case "postgresql":
		logger.Info("using CDB job store")
		return cdbjs.NewCDBJobStore(jobStoreURI)
	default:
		return nil, xerrors.Errorf("unsupported job store URI scheme: %q", uri.Scheme)
	}
}
