package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/rule"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/testutil"
)

func seedAlert(repo *testutil.MockAlertRepository, severity string, triggeredAt time.Time) *alert.Alert {
	a := &alert.Alert{
		AlertRuleID: 1,
		HostID:      "host-1",
		MetricName:  "cpu_percent",
		Value:       95.5,
		Threshold:   90,
		Severity:    severity,
		Message:     "cpu_percent is 95.5 (gte 90.0)",
		TriggeredAt: triggeredAt,
	}
	if _, err := repo.Create(context.Background(), a); err != nil {
		panic(err)
	}
	return a
}

func TestAlertService_Acknowledge(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	svc := NewAlertService(repo, testLogger())

	a := seedAlert(repo, rule.SeverityWarning, time.Now())

	got, err := svc.Acknowledge(context.Background(), a.ID, "alice")
	if err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if got.AcknowledgedAt == nil {
		t.Fatal("AcknowledgedAt not set")
	}
	if got.AcknowledgedBy != "alice" {
		t.Errorf("AcknowledgedBy = %q, want alice", got.AcknowledgedBy)
	}

	// A second acknowledgement keeps the original operator.
	first := *got.AcknowledgedAt
	got, err = svc.Acknowledge(context.Background(), a.ID, "bob")
	if err != nil {
		t.Fatalf("second Acknowledge() error = %v", err)
	}
	if got.AcknowledgedBy != "alice" || !got.AcknowledgedAt.Equal(first) {
		t.Errorf("repeat acknowledge overwrote the original: by=%q at=%v", got.AcknowledgedBy, got.AcknowledgedAt)
	}
}

func TestAlertService_Resolve(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	svc := NewAlertService(repo, testLogger())

	a := seedAlert(repo, rule.SeverityCritical, time.Now())

	got, err := svc.Resolve(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ResolvedAt == nil {
		t.Fatal("ResolvedAt not set")
	}
	if got.IsActive() {
		t.Error("alert still active after Resolve")
	}

	// Resolving twice is a no-op.
	first := *got.ResolvedAt
	got, err = svc.Resolve(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if !got.ResolvedAt.Equal(first) {
		t.Errorf("repeat resolve moved ResolvedAt from %v to %v", first, got.ResolvedAt)
	}
}

func TestAlertService_GetByIDNotFound(t *testing.T) {
	svc := NewAlertService(testutil.NewMockAlertRepository(), testLogger())

	_, err := svc.GetByID(context.Background(), 99)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("GetByID() error = %v, want a 404 AppError", err)
	}
}

func TestAlertService_ListPagination(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	svc := NewAlertService(repo, testLogger())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedAlert(repo, rule.SeverityInfo, base.Add(time.Duration(i)*time.Minute))
	}

	got, total, err := svc.List(context.Background(), alert.Filter{}, 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(got) != 2 {
		t.Fatalf("page size = %d, want 2", len(got))
	}
	// Newest first.
	if !got[0].TriggeredAt.After(got[1].TriggeredAt) {
		t.Errorf("alerts not ordered newest first: %v then %v", got[0].TriggeredAt, got[1].TriggeredAt)
	}
}

func TestAlertService_Summary(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	svc := NewAlertService(repo, testLogger())

	now := time.Now()
	seedAlert(repo, rule.SeverityCritical, now)
	seedAlert(repo, rule.SeverityCritical, now)
	seedAlert(repo, rule.SeverityWarning, now)
	resolved := seedAlert(repo, rule.SeverityInfo, now)
	if _, err := svc.Resolve(context.Background(), resolved.ID); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary[rule.SeverityCritical] != 2 {
		t.Errorf("critical = %d, want 2", summary[rule.SeverityCritical])
	}
	if summary[rule.SeverityWarning] != 1 {
		t.Errorf("warning = %d, want 1", summary[rule.SeverityWarning])
	}
	if summary[rule.SeverityInfo] != 0 {
		t.Errorf("info = %d, want 0 (resolved alerts excluded)", summary[rule.SeverityInfo])
	}
}
