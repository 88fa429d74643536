package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/internal/storage/memory"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

func setupTestHandler(t *testing.T, checks map[string]healthCheck) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := service.NewSettlementService(memory.New(), service.WithMetrics(m))

	server := httptest.NewServer(newHandler(svc, m, reg, checks))
	t.Cleanup(server.Close)
	return server
}

func TestHandler_ServesRPCAndMetrics(t *testing.T) {
	server := setupTestHandler(t, nil)
	client := apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL)

	resp, err := client.CalculateSettlement(context.Background(), connect.NewRequest(&api.CalculateSettlementRequest{
		GroupName: "Lunch",
		Expenses: []*api.Expense{
			{Participant: "Alice", Amount: "30"},
			{Participant: "Bob", Amount: "10"},
		},
	}))
	if err != nil {
		t.Fatalf("CalculateSettlement failed: %v", err)
	}
	if len(resp.Msg.Settlement.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(resp.Msg.Settlement.Transfers))
	}

	metricsResp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer metricsResp.Body.Close()
	body, _ := io.ReadAll(metricsResp.Body)

	for _, want := range []string{
		"settleup_settlements_computed_total 1",
		`settleup_rpc_requests_total{code="ok",procedure="/settleup.v1.SettlementService/CalculateSettlement"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}

func TestHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]healthCheck
		wantStatus int
		wantReport map[string]string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantReport: map[string]string{},
		},
		{
			name: "all healthy",
			checks: map[string]healthCheck{
				"storage": func(context.Context) error { return nil },
				"cache":   nil,
			},
			wantStatus: http.StatusOK,
			wantReport: map[string]string{"storage": "ok"},
		},
		{
			name: "storage down",
			checks: map[string]healthCheck{
				"storage": func(context.Context) error { return errors.New("database is locked") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: map[string]string{"storage": "database is locked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestHandler(t, tt.checks)

			resp, err := http.Get(server.URL + "/healthz")
			if err != nil {
				t.Fatalf("GET /healthz failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var report map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
				t.Fatalf("decode report: %v", err)
			}
			if len(report) != len(tt.wantReport) {
				t.Fatalf("report = %v, want %v", report, tt.wantReport)
			}
			for k, v := range tt.wantReport {
				if report[k] != v {
					t.Errorf("report[%s] = %q, want %q", k, report[k], v)
				}
			}
		})
	}
}

func TestCorsMiddleware_Preflight(t *testing.T) {
	called := false
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/settleup.v1.SettlementService/GetSplit", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if called {
		t.Error("preflight request reached the wrapped handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestOpenStore(t *testing.T) {
	cfg := &config.Config{DataBackend: config.BackendSQLite, DBPath: t.TempDir() + "/settleup.db"}
	store, check, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore(sqlite) failed: %v", err)
	}
	defer store.Close()
	if err := check(context.Background()); err != nil {
		t.Errorf("sqlite health check failed: %v", err)
	}

	mem, check, err := openStore(context.Background(), &config.Config{DataBackend: config.BackendMemory})
	if err != nil || check != nil {
		t.Fatalf("openStore(memory) = %v, %v", check, err)
	}
	mem.Close()

	if _, _, err := openStore(context.Background(), &config.Config{DataBackend: "mongo"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenPublisher_Disabled(t *testing.T) {
	p, err := openPublisher(&config.Config{EventsBackend: config.EventsNone})
	if err != nil {
		t.Fatalf("openPublisher failed: %v", err)
	}
	if _, ok := p.(events.Nop); !ok {
		t.Errorf("publisher = %T, want events.Nop", p)
	}
}

func TestOpenCache_DisabledWithoutAddr(t *testing.T) {
	c, check, err := openCache(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("openCache failed: %v", err)
	}
	if check != nil {
		t.Error("expected no health check for disabled cache")
	}
	c.Close()
}
