package frontend

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"

	"github.com/moratsam/jobprogress/frontend/mocks"
	"github.com/moratsam/jobprogress/jobstore"
	"github.com/moratsam/jobprogress/progress"
)

var _ = gc.Suite(new(FrontendTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type FrontendTestSuite struct{}

func (s *FrontendTestSuite) TestConfigValidation(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	origCfg := Config{
		JobRegistryAPI: mocks.NewMockJobRegistryAPI(ctrl),
		ListenAddr:     ":0",
	}

	cfg := origCfg
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Registerer, gc.Not(gc.IsNil), gc.Commentf("default registerer was not assigned"))
	c.Assert(cfg.Logger, gc.Not(gc.IsNil), gc.Commentf("default logger was not assigned"))

	cfg = origCfg
	cfg.JobRegistryAPI = nil
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*job registry API has not been provided.*")

	cfg = origCfg
	cfg.ListenAddr = ""
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*listen address has not been specified.*")
}

func (s *FrontendTestSuite) TestPollRunningJob(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(runningJob("job_1", "Sort", 0.999), nil)

	res := s.get(fe, progressEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusOK)
	c.Assert(res.Header().Get("Content-Type"), gc.Equals, "application/json")
	c.Assert(decode(c, res), gc.DeepEquals, map[string]interface{}{
		"status":   "poll",
		"progress": 99.0,
		"max":      100.0,
		"body":     nil,
	})
}

func (s *FrontendTestSuite) TestPollFinishedAndAbsentJobsRedirect(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	gomock.InOrder(
		mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(finishedJob("job_1", "Sort"), nil),
		mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(nil, xerrors.Errorf("find job: %w", jobstore.ErrUnknownJob)),
	)

	exp := map[string]interface{}{
		"status": "redirect",
		"target": inspectEndpoint,
		"params": map[string]interface{}{"job": "job_1", "dst_key": "result_1"},
	}

	finished := s.get(fe, progressEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(finished.Code, gc.Equals, http.StatusOK)
	c.Assert(decode(c, finished), gc.DeepEquals, exp)

	absent := s.get(fe, progressEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(absent.Code, gc.Equals, http.StatusOK)
	c.Assert(decode(c, absent), gc.DeepEquals, exp)

	c.Assert(testutil.ToFloat64(fe.metrics.responses.WithLabelValues("redirect")), gc.Equals, 2.0)
}

func (s *FrontendTestSuite) TestPollAbsentJobWithDistinctPolicy(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsDistinct)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(nil, jobstore.ErrUnknownJob)

	res := s.get(fe, progressEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusOK)
	c.Assert(decode(c, res)["status"], gc.Equals, "not_found")
}

func (s *FrontendTestSuite) TestPollErrors(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_2")).Return(nil, xerrors.New("connection refused"))

	// The registry must not be consulted for malformed keys.
	res := s.get(fe, progressEndpoint+"?dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusBadRequest)
	c.Assert(decode(c, res)["status"], gc.Equals, "error")

	res = s.get(fe, progressEndpoint+"?job=job_1&dst_key=result%201")
	c.Assert(res.Code, gc.Equals, http.StatusBadRequest)

	res = s.get(fe, progressEndpoint+"?job=job_2&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusServiceUnavailable)
	c.Assert(decode(c, res)["error"], gc.Matches, ".*job registry unavailable.*")
}

func (s *FrontendTestSuite) TestInspectIsUnimplemented(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, _ := s.setupFrontend(c, ctrl, progress.MissingIsFinished)

	res := s.get(fe, inspectEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusNotImplemented)
	c.Assert(decode(c, res)["error"], gc.Matches, ".*unimplemented.*")
}

func (s *FrontendTestSuite) TestProgressPage(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(runningJob("job_1", "Sort", 0.4), nil)

	fe.tplExecutor = func(tpl *template.Template, _ io.Writer, data map[string]interface{}) error {
		c.Assert(tpl, gc.Equals, progressPageTemplate)
		c.Assert(data["pageTitle"], gc.Equals, "Sort")
		c.Assert(data["section"], gc.Equals, "result_1")
		c.Assert(data["percent"], gc.Equals, 40)
		c.Assert(data["refreshSeconds"], gc.Equals, pageRefreshSeconds)
		return nil
	}

	res := s.get(fe, progressPageEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusOK)
}

func (s *FrontendTestSuite) TestProgressPageRendersTitleAndSection(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(finishedJob("job_1", "Sort"), nil)

	res := s.get(fe, progressPageEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusOK)

	body := res.Body.String()
	c.Assert(strings.Contains(body, "<title>Sort</title>"), gc.Equals, true, gc.Commentf(body))
	c.Assert(strings.Contains(body, "<h2>result_1</h2>"), gc.Equals, true, gc.Commentf(body))
	c.Assert(strings.Contains(body, `http-equiv="refresh"`), gc.Equals, false, gc.Commentf(body))
}

func (s *FrontendTestSuite) TestProgressPageForAbsentJob(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, mockRegistry := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	mockRegistry.EXPECT().FindJob(jobstore.Key("job_1")).Return(nil, jobstore.ErrUnknownJob)

	res := s.get(fe, progressPageEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(res.Code, gc.Equals, http.StatusNotFound)
	c.Assert(strings.Contains(res.Body.String(), "Job not found"), gc.Equals, true)
}

func (s *FrontendTestSuite) TestProgressRoutesAreNotLogged(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	logger, hook := logtest.NewNullLogger()
	mockRegistry := mocks.NewMockJobRegistryAPI(ctrl)
	fe, err := NewFrontend(Config{
		JobRegistryAPI: mockRegistry,
		ListenAddr:     ":0",
		Logger:         logrus.NewEntry(logger),
	})
	c.Assert(err, gc.IsNil)

	mockRegistry.EXPECT().FindJob(gomock.Any()).Return(runningJob("job_1", "Sort", 0.1), nil).Times(2)
	_ = s.get(fe, progressEndpoint+"?job=job_1&dst_key=result_1")
	_ = s.get(fe, progressPageEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(hook.AllEntries(), gc.HasLen, 0)

	_ = s.get(fe, inspectEndpoint+"?job=job_1&dst_key=result_1")
	c.Assert(hook.AllEntries(), gc.HasLen, 1)
	c.Assert(hook.LastEntry().Data["path"], gc.Equals, inspectEndpoint)
	c.Assert(hook.LastEntry().Data["status"], gc.Equals, http.StatusNotImplemented)
}

func (s *FrontendTestSuite) TestUnknownRoute(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	fe, _ := s.setupFrontend(c, ctrl, progress.MissingIsFinished)
	res := s.get(fe, "/no/such/page")
	c.Assert(res.Code, gc.Equals, http.StatusNotFound)
}

func (s *FrontendTestSuite) setupFrontend(c *gc.C, ctrl *gomock.Controller, policy progress.MissingPolicy) (*Frontend, *mocks.MockJobRegistryAPI) {
	mockRegistry := mocks.NewMockJobRegistryAPI(ctrl)

	fe, err := NewFrontend(Config{
		JobRegistryAPI: mockRegistry,
		ListenAddr:     ":0",
		MissingPolicy:  policy,
		Registerer:     prometheus.NewRegistry(),
	})
	c.Assert(err, gc.IsNil)

	return fe, mockRegistry
}

func (s *FrontendTestSuite) get(fe *Frontend, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	res := httptest.NewRecorder()
	fe.router.ServeHTTP(res, req)
	return res
}

func decode(c *gc.C, res *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	c.Assert(json.NewDecoder(res.Body).Decode(&out), gc.IsNil)
	return out
}

func runningJob(key, descr string, fraction float64) *jobstore.Job {
	return &jobstore.Job{
		Key:         jobstore.Key(key),
		Description: descr,
		Progress:    fraction,
		StartTime:   time.Now(),
	}
}

func finishedJob(key, descr string) *jobstore.Job {
	job := runningJob(key, descr, 1)
	job.EndTime = time.Now()
	return job
}
