package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	boom := errors.New("down")

	tests := []struct {
		name       string
		db         DBPinger
		generation GenerationChecker
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "nothing configured",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"retrieval": CheckOK},
		},
		{
			name:       "all healthy",
			db:         &mockPinger{},
			generation: &mockChecker{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{
				"retrieval": CheckOK, "database": CheckOK, "generation": CheckOK,
			},
		},
		{
			name:       "db down degrades",
			db:         &mockPinger{err: boom},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"retrieval": CheckOK, "database": CheckError},
		},
		{
			name:       "generation down degrades",
			generation: &mockChecker{err: boom},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"retrieval": CheckOK, "generation": CheckError},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := New(tt.db, tt.generation).Check(context.Background())
			if report.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", report.Status, tt.wantStatus)
			}
			if len(report.Checks) != len(tt.wantChecks) {
				t.Fatalf("checks = %v, want %v", report.Checks, tt.wantChecks)
			}
			for k, v := range tt.wantChecks {
				if report.Checks[k] != v {
					t.Errorf("checks[%s] = %s, want %s", k, report.Checks[k], v)
				}
			}
		})
	}
}
