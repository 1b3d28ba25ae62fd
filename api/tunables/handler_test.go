package tunables

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/teeterq/teeter/core/model"
	"github.com/teeterq/teeter/core/sched"
)

type nullDevice struct{}

func (nullDevice) Submit(*model.Request) {}

func newScheduler(t *testing.T) *sched.Scheduler {
	t.Helper()
	s, err := sched.New(sched.Config{SyncRatio: 4}, nullDevice{}, nil, nil)
	if err != nil {
		t.Fatalf("scheduler: %v", err)
	}
	return s
}

func TestRatioHandlerGet(t *testing.T) {
	h := NewRatioHandler(newScheduler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tunables/sync_ratio", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var p struct {
		SyncRatio int `json:"sync_ratio"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.SyncRatio != 4 {
		t.Fatalf("expected 4 got %d", p.SyncRatio)
	}
}

func TestRatioHandlerPut(t *testing.T) {
	s := newScheduler(t)
	h := NewRatioHandler(s)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/tunables/sync_ratio",
		strings.NewReader(`{"sync_ratio":9}`)))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if s.SyncRatio() != 9 {
		t.Fatalf("expected 9 got %d", s.SyncRatio())
	}
}

func TestRatioHandlerPutOutOfRange(t *testing.T) {
	s := newScheduler(t)
	h := NewRatioHandler(s)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/tunables/sync_ratio",
		strings.NewReader(`{"sync_ratio":1000}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", rec.Code)
	}
	if s.SyncRatio() != 4 {
		t.Fatalf("ratio must be unchanged, got %d", s.SyncRatio())
	}
}

func TestRatioHandlerBadBody(t *testing.T) {
	h := NewRatioHandler(newScheduler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/tunables/sync_ratio",
		strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestRatioHandlerMethodNotAllowed(t *testing.T) {
	h := NewRatioHandler(newScheduler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/tunables/sync_ratio", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newScheduler(t)
	s.Enqueue(&model.Request{ID: "s1", Dir: model.Sync})
	s.Enqueue(&model.Request{ID: "a1", Dir: model.Async})
	h := NewStatsHandler(s)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sched/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var st sched.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.QueueDepthSync != 1 || st.QueueDepthAsync != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
