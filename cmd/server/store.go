package main

import (
	"sync"
	"time"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

const (
	statusRunning = "running"
	statusDone    = "done"
	statusFailed  = "failed"
)

type run struct {
	ID        string
	Status    string
	Error     string
	CreatedAt time.Time
	Result    *scheduler.Result
}

// store keeps every run of the process in memory, in creation order.
type store struct {
	mu    sync.RWMutex
	runs  map[string]*run
	order []string
}

func newStore() *store {
	return &store{runs: make(map[string]*run)}
}

func (s *store) create(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = &run{ID: id, Status: statusRunning, CreatedAt: time.Now()}
	s.order = append(s.order, id)
}

func (s *store) finish(id string, result *scheduler.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return
	}
	if err != nil {
		r.Status = statusFailed
		r.Error = err.Error()
		return
	}
	r.Status = statusDone
	r.Result = result
}

// get returns a copy so callers can read it without the lock.
func (s *store) get(id string) (run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return run{}, false
	}
	return *r, true
}

func (s *store) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...)
}
