package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/internal/report"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type server struct {
	ctx     context.Context
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	runs    *store
	wg      sync.WaitGroup
}

func newServer(ctx context.Context, cfg *config.Config, l *zap.Logger, m *metrics.Metrics) *server {
	return &server{ctx: ctx, cfg: cfg, log: l, metrics: m, runs: newStore()}
}

// wait blocks until every background run has finished.
func (s *server) wait() {
	s.wg.Wait()
}

func abortWithError(ctx *gin.Context, status int, err error) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"code":  apperrors.CodeOf(err),
		"error": err.Error(),
	})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"scheduleIds": s.runs.ids(),
	})
}

func (s *server) handleGetScheduleWithId(ctx *gin.Context) {
	r, ok := s.runs.get(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}

	body := gin.H{
		"id":        r.ID,
		"status":    r.Status,
		"createdAt": r.CreatedAt,
	}
	if r.Error != "" {
		body["error"] = r.Error
	}
	if r.Result != nil {
		data, err := csvio.ExportScheduleString(r.Result)
		if err != nil {
			abortWithError(ctx, http.StatusInternalServerError, err)
			return
		}
		body["data"] = data
		body["result"] = r.Result
	}
	ctx.JSON(http.StatusOK, body)
}

// finished resolves a completed run or writes the error response.
func (s *server) finished(ctx *gin.Context) (*scheduler.Result, bool) {
	r, ok := s.runs.get(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return nil, false
	}
	if r.Result == nil {
		ctx.JSON(http.StatusConflict, gin.H{"id": r.ID, "status": r.Status, "error": r.Error})
		return nil, false
	}
	return r.Result, true
}

func (s *server) handleGetSchedulePDF(ctx *gin.Context) {
	result, ok := s.finished(ctx)
	if !ok {
		return
	}
	doc, err := report.Render(result)
	if err != nil {
		abortWithError(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="timetable.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", doc)
}

type componentSuggestions struct {
	Component   model.UnscheduledComponent `json:"component"`
	Suggestions []scheduler.Suggestion     `json:"suggestions"`
}

func (s *server) handleGetSuggestions(ctx *gin.Context) {
	result, ok := s.finished(ctx)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	out := make([]componentSuggestions, 0, len(result.Unscheduled))
	for _, u := range result.Unscheduled {
		out = append(out, componentSuggestions{Component: u, Suggestions: result.SuggestAlternatives(u, limit)})
	}
	ctx.JSON(http.StatusOK, gin.H{
		"analysis":    scheduler.AnalyzeConflicts(result.Unscheduled),
		"suggestions": out,
	})
}

func (s *server) handlePostSchedule(ctx *gin.Context) {
	sc := s.cfg.Scheduling
	if v := ctx.PostForm("attempts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, apperrors.Configuration("invalid attempts %q", v))
			return
		}
		sc.MaxAttempts = n
	}
	if v := ctx.PostForm("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, apperrors.Configuration("invalid seed %q", v))
			return
		}
		sc.BaseSeed = n
	}
	if v := ctx.PostForm("parallel"); v != "" {
		sc.Parallel = v == "true" || v == "1"
	}

	courses, err := s.readCourses(ctx, sc.DefaultEnrollment)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err)
		return
	}
	classrooms, err := s.readClassrooms(ctx)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	optimizer, err := scheduler.NewOptimizer(&sc, scheduler.Input{Courses: courses, Rooms: classrooms},
		scheduler.WithLogger(s.log.With(zap.String("schedule_id", id))),
		scheduler.WithRecorder(s.metrics))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err)
		return
	}

	s.runs.create(id)
	s.wg.Add(1)
	go s.createSchedule(id, optimizer)

	ctx.JSON(http.StatusAccepted, gin.H{
		"id": id,
	})
}

func (s *server) createSchedule(id string, optimizer *scheduler.Optimizer) {
	defer s.wg.Done()
	result, err := optimizer.Run(s.ctx)
	if err != nil {
		s.log.Error("schedule failed", zap.String("schedule_id", id), zap.Error(err))
	}
	s.runs.finish(id, result, err)
}

func (s *server) readCourses(ctx *gin.Context, defaultEnrollment int) ([]*model.Course, error) {
	fh, err := ctx.FormFile("courses")
	if err != nil {
		return nil, apperrors.Input(err, "missing courses file")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.Input(err, "failed to open %s", fh.Filename)
	}
	defer f.Close()
	return csvio.ReadCourses(f, s.cfg.Files.Comma(), defaultEnrollment)
}

func (s *server) readClassrooms(ctx *gin.Context) ([]*model.Classroom, error) {
	fh, err := ctx.FormFile("classrooms")
	if errors.Is(err, http.ErrMissingFile) {
		s.log.Warn("no classrooms uploaded, using default rooms")
		return csvio.DefaultClassrooms(), nil
	}
	if err != nil {
		return nil, apperrors.Input(err, "failed to read classrooms file")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.Input(err, "failed to open %s", fh.Filename)
	}
	defer f.Close()
	return csvio.ReadClassrooms(f, s.cfg.Files.Comma())
}
