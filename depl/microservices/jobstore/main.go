package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/depl/monolith/service"
	jssvc "github.com/moratsam/jobprogress/depl/monolith/service/jobstore"
	"github.com/moratsam/jobprogress/depl/monolith/service/reaper"
	js "github.com/moratsam/jobprogress/jobstore"
	cdbjs "github.com/moratsam/jobprogress/jobstore/cdb"
	memjs "github.com/moratsam/jobprogress/jobstore/memory"
)

var (
	appName = "jobprogress-job-store"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "job-store-uri",
			Value:  "in-memory://",
			EnvVar: "JOB_STORE_URI",
			Usage:  "The URI for connecting to the job store (supported URIs: in-memory://, postgresql://user@host:26257/jobprogress?sslmode=disable) Defaults to in-memory",
		},
		cli.IntFlag{
			Name:   "grpc-port",
			Value:  8080,
			EnvVar: "GRPC_PORT",
			Usage:  "The port for exposing the gRPC endpoints for accessing the job store",
		},
		cli.DurationFlag{
			Name:   "reaper-interval",
			Value:  5 * time.Minute,
			EnvVar: "REAPER_INTERVAL",
			Usage:  "The time between subsequent passes that remove finished jobs",
		},
		cli.DurationFlag{
			Name:   "reaper-retention",
			Value:  time.Hour,
			EnvVar: "REAPER_RETENTION",
			Usage:  "How long finished jobs are kept in the job store",
		},
		cli.IntFlag{
			Name:   "pprof-port",
			Value:  6060,
			EnvVar: "PPROF_PORT",
			Usage:  "The port for exposing pprof endpoints",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	var wg sync.WaitGroup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	jobStore, err := getJobStore(appCtx.String("job-store-uri"))
	if err != nil {
		return err
	}

	jobStoreSvc, err := jssvc.NewService(jssvc.Config{
		JobStore:   jobStore,
		ListenAddr: fmt.Sprintf(":%d", appCtx.Int("grpc-port")),
		Logger:     logger.WithField("service", "job-store"),
	})
	if err != nil {
		return err
	}

	reaperSvc, err := reaper.NewService(reaper.Config{
		JobStoreAPI: jobStore,
		Interval:    appCtx.Duration("reaper-interval"),
		Retention:   appCtx.Duration("reaper-retention"),
		Logger:      logger.WithField("service", "reaper"),
	})
	if err != nil {
		return err
	}

	var runErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		if runErr = (service.Group{jobStoreSvc, reaperSvc}).Run(ctx); runErr != nil {
			logger.WithField("err", runErr).Error("job store services exited with error")
			cancelFn()
		}
	}()

	// Start pprof server
	pprofListener, err := net.Listen("tcp", fmt.Sprintf(":%d", appCtx.Int("pprof-port")))
	if err != nil {
		return err
	}
	defer func() { _ = pprofListener.Close() }()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.WithField("port", appCtx.Int("pprof-port")).Info("listening for pprof requests")
		srv := new(http.Server)
		_ = srv.Serve(pprofListener)
	}()

	// Start signal watcher
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			_ = pprofListener.Close()
			cancelFn()
		case <-ctx.Done():
			_ = pprofListener.Close()
		}
	}()

	// Keep running until we receive a signal
	wg.Wait()
	return runErr
}

func getJobStore(jobStoreURI string) (js.JobStore, error) {
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
