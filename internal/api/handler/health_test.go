package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func readiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestReadiness_AllHealthy(t *testing.T) {
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: stubPinger{}, redis: stubPinger{}})
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, resp)
	}
}

func TestReadiness_RedisDisabled(t *testing.T) {
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: stubPinger{}})
	if code != http.StatusOK || resp.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("expected redis disabled, got %d %+v", code, resp)
	}
}

func TestReadiness_MongoDown(t *testing.T) {
	code, resp := readiness(t, &HealthDependenciesHandler{mongo: stubPinger{err: errors.New("no reachable servers")}})
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, resp)
	}
	if resp.Dependencies["mongodb"].Error == "" {
		t.Fatalf("expected mongodb error detail")
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
