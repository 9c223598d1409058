package frontend

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/jobstore"
	"github.com/moratsam/jobprogress/progress"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/moratsam/jobprogress/frontend JobRegistryAPI

const (
	progressEndpoint     = "/progress.json"
	progressPageEndpoint = "/progress.html"
	inspectEndpoint      = "/inspect.json"

	// Seconds between automatic reloads of the page of a running job.
	pageRefreshSeconds = 2
)

// Progress routes are polled at a high rate and are left out of the
// request log.
var quietRoutes = map[string]bool{
	progressEndpoint:     true,
	progressPageEndpoint: true,
}

// JobRegistryAPI defines the API methods for looking up jobs in the job
// registry.
type JobRegistryAPI interface {
	FindJob(key jobstore.Key) (*jobstore.Job, error)
}

// Frontend serves the progress of running jobs over HTTP.
type Frontend struct {
	cfg      Config
	router   *mux.Router
	resolver *progress.Resolver
	metrics  *metrics

	// A template executor hook which tests can override.
	tplExecutor func(tpl *template.Template, w io.Writer, data map[string]interface{}) error
}

// NewFrontend creates a new front-end instance with the specified config.
func NewFrontend(cfg Config) (*Frontend, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("front-end: config validation failed: %w", err)
	}

	resolver, err := progress.NewResolver(progress.Config{
		Registry:       cfg.JobRegistryAPI,
		RedirectTarget: inspectEndpoint,
		MissingPolicy:  cfg.MissingPolicy,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, xerrors.Errorf("front-end: %w", err)
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, xerrors.Errorf("front-end: %w", err)
	}

	f := &Frontend{
		cfg:      cfg,
		router:   mux.NewRouter(),
		resolver: resolver,
		metrics:  m,
		tplExecutor: func(tpl *template.Template, w io.Writer, data map[string]interface{}) error {
			return tpl.Execute(w, data)
		},
	}

	f.router.HandleFunc(progressEndpoint, f.serveProgress).Methods("GET").Name(progressEndpoint)
	f.router.HandleFunc(progressPageEndpoint, f.renderProgressPage).Methods("GET").Name(progressPageEndpoint)
	f.router.HandleFunc(inspectEndpoint, f.serveInspect).Methods("GET").Name(inspectEndpoint)
	f.router.NotFoundHandler = http.HandlerFunc(f.render404Page)
	f.router.Use(f.logRequests)
	return f, nil
}

// Serve listens for incoming requests until ctx is cancelled.
func (f *Frontend) Serve(ctx context.Context) error {
	l, err := net.Listen("tcp", f.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    f.cfg.ListenAddr,
		Handler: f.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Ignore error when the server shuts down.
		err = nil
	}

	return err
}

func (f *Frontend) serveProgress(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := f.resolver.Resolve(q.Get("job"), q.Get("dst_key"))
	if err != nil {
		f.writeError(w, err)
		return
	}

	f.metrics.observe(string(res.Status()))
	f.writeJSON(w, http.StatusOK, res)
}

// serveInspect is the endpoint finished jobs are redirected to.
func (f *Frontend) serveInspect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := f.resolver.Done(q.Get("job"), q.Get("dst_key"))
	if err != nil {
		f.writeError(w, err)
		return
	}
	f.writeJSON(w, http.StatusOK, res)
}

func (f *Frontend) renderProgressPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := f.resolver.Page(q.Get("job"), q.Get("dst_key"))
	switch {
	case err == nil:
	case xerrors.Is(err, progress.ErrNullJobReference):
		w.WriteHeader(http.StatusNotFound)
		_ = f.tplExecutor(msgPageTemplate, w, map[string]interface{}{
			"pageTitle":      page.Title,
			"messageContent": page.Section,
		})
		return
	default:
		w.WriteHeader(statusCodeFor(err))
		_ = f.tplExecutor(msgPageTemplate, w, map[string]interface{}{
			"pageTitle":      "Error",
			"messageContent": err.Error(),
		})
		return
	}

	data := map[string]interface{}{
		"pageTitle": page.Title,
		"section":   page.Section,
		"percent":   page.Percent,
		"finished":  page.Finished,
	}
	if !page.Finished {
		data["refreshSeconds"] = pageRefreshSeconds
	}
	if err := f.tplExecutor(progressPageTemplate, w, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (f *Frontend) render404Page(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	_ = f.tplExecutor(msgPageTemplate, w, map[string]interface{}{
		"pageTitle":      "Page not found",
		"messageContent": "Page not found.",
	})
}

func (f *Frontend) writeError(w http.ResponseWriter, err error) {
	f.metrics.observe("error")
	f.writeJSON(w, statusCodeFor(err), map[string]string{
		"status": "error",
		"error":  err.Error(),
	})
}

func (f *Frontend) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.cfg.Logger.WithField("err", err).Error("encode response")
	}
}

func statusCodeFor(err error) int {
	switch {
	case xerrors.Is(err, progress.ErrInvalidIdentifier):
		return http.StatusBadRequest
	case xerrors.Is(err, progress.ErrUnimplemented):
		return http.StatusNotImplemented
	case xerrors.Is(err, progress.ErrRegistryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
