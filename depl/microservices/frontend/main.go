package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"

	"github.com/moratsam/jobprogress/depl/monolith/service/frontend"
	jsapi "github.com/moratsam/jobprogress/jobstoreapi"
	protojsapi "github.com/moratsam/jobprogress/jobstoreapi/proto"
	"github.com/moratsam/jobprogress/progress"
)

var (
	appName = "jobprogress-frontend"
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
			Name:   "job-store-api",
			EnvVar: "JOB_STORE_API",
			Usage:  "The gRPC endpoint for connecting to the job store",
		},
		cli.StringFlag{
			Name:   "missing-job-policy",
			Value:  "finished",
			EnvVar: "MISSING_JOB_POLICY",
			Usage:  "How polls for unknown jobs are answered. Supported values are 'finished' and 'distinct'",
		},
		cli.IntFlag{
			Name:   "fe-port",
			Value:  8080,
			EnvVar: "FE_PORT",
			Usage:  "The port for exposing the front-end",
		},
		cli.IntFlag{
			Name:   "pprof-port",
			Value:  6060,
			EnvVar: "PPROF_PORT",
			Usage:  "The port for exposing pprof and prometheus endpoints",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	var wg sync.WaitGroup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	policy, err := progress.ParseMissingPolicy(appCtx.String("missing-job-policy"))
	if err != nil {
		return err
	}

	jobStoreAPI, err := getJobStoreAPI(ctx, appCtx.String("job-store-api"))
	if err != nil {
		return err
	}

	var frontendCfg frontend.Config
	frontendCfg.ListenAddr = fmt.Sprintf(":%d", appCtx.Int("fe-port"))
	frontendCfg.MissingPolicy = policy
	frontendCfg.JobRegistryAPI = jobStoreAPI
	frontendCfg.Logger = logger
	feSvc, err := frontend.NewService(frontendCfg)
	if err != nil {
		return err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := feSvc.Run(ctx); err != nil {
			logger.WithField("err", err).Error("front-end service exited with error")
			cancelFn()
		}
	}()

	// Start pprof server; the default mux also carries /metrics.
	http.Handle("/metrics", promhttp.Handler())
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
	return nil
}

func getJobStoreAPI(ctx context.Context, jobStoreAPI string) (*jsapi.JobStoreClient, error) {
	if jobStoreAPI == "" {
		return nil, xerrors.Errorf("job store API must be specified with --job-store-api")
	}

	dialCtx, cancelFn := context.WithTimeout(ctx, 5*time.Second)
	defer cancelFn()
	jobStoreConn, err := grpc.DialContext(dialCtx, jobStoreAPI, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, xerrors.Errorf("could not connect to job store API: %w", err)
	}
	jobStoreCli := jsapi.NewJobStoreClient(ctx, protojsapi.NewJobRegistryClient(jobStoreConn))

	return jobStoreCli, nil
}
