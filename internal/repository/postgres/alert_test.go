package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/testutil"
)

func insertAlert(t *testing.T, repo alert.Repository, ruleID int64, hostID, severity string, triggeredAt time.Time) *alert.Alert {
	t.Helper()
	a := &alert.Alert{
		AlertRuleID: ruleID,
		HostID:      hostID,
		HostName:    "Office Gateway",
		MetricName:  "cpu_percent",
		Value:       95.5,
		Threshold:   90,
		Severity:    severity,
		Message:     "cpu_percent is 95.5 (gte 90.0)",
		TriggeredAt: triggeredAt,
	}
	if _, err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return a
}

func TestAlertRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	triggered := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, triggered)

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil for an existing alert")
	}
	if got.HostID != "host-1" || got.Value != 95.5 || got.Severity != rule.SeverityWarning {
		t.Errorf("GetByID() = %+v", got)
	}
	if !got.TriggeredAt.Equal(triggered) {
		t.Errorf("TriggeredAt = %v, want %v", got.TriggeredAt, triggered)
	}
	if got.AcknowledgedAt != nil || got.ResolvedAt != nil {
		t.Errorf("new alert carries timestamps: ack=%v resolved=%v", got.AcknowledgedAt, got.ResolvedAt)
	}
}

func TestAlertRepository_UpdateLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	a := insertAlert(t, repo, 1, "host-1", rule.SeverityCritical, time.Now().UTC())

	ack := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	a.AcknowledgedAt = &ack
	a.AcknowledgedBy = "alice"
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.AcknowledgedAt == nil || !got.AcknowledgedAt.Equal(ack) {
		t.Errorf("AcknowledgedAt = %v, want %v", got.AcknowledgedAt, ack)
	}
	if got.AcknowledgedBy != "alice" {
		t.Errorf("AcknowledgedBy = %q, want alice", got.AcknowledgedBy)
	}

	resolved := ack.Add(time.Hour)
	got.ResolvedAt = &resolved
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err = repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.IsActive() {
		t.Error("alert still active after resolved_at set")
	}
}

func TestAlertRepository_ListWithPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, base.Add(time.Duration(i)*time.Minute))
	}
	insertAlert(t, repo, 2, "host-2", rule.SeverityCritical, base.Add(10*time.Minute))

	alerts, total, err := repo.ListWithPagination(ctx, alert.Filter{}, 3, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if total != 6 {
		t.Errorf("total = %d, want 6", total)
	}
	if len(alerts) != 3 {
		t.Fatalf("page = %d alerts, want 3", len(alerts))
	}
	// Newest first.
	if alerts[0].AlertRuleID != 2 {
		t.Errorf("first alert rule = %d, want the newest (rule 2)", alerts[0].AlertRuleID)
	}

	alerts, total, err = repo.ListWithPagination(ctx, alert.Filter{HostID: "host-2"}, 10, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if total != 1 || len(alerts) != 1 {
		t.Errorf("host filter: total=%d len=%d, want 1/1", total, len(alerts))
	}

	alerts, _, err = repo.ListWithPagination(ctx, alert.Filter{Severity: rule.SeverityCritical}, 10, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("severity filter = %d alerts, want 1", len(alerts))
	}
}

func TestAlertRepository_ActiveOnlyFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	open := insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, now)
	closed := insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, now.Add(time.Minute))

	resolved := now.Add(2 * time.Minute)
	closed.ResolvedAt = &resolved
	if err := repo.Update(ctx, closed); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	alerts, total, err := repo.ListWithPagination(ctx, alert.Filter{ActiveOnly: true}, 10, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if total != 1 || len(alerts) != 1 || alerts[0].ID != open.ID {
		t.Errorf("active filter returned %d alerts (total %d), want only the open one", len(alerts), total)
	}
}

func TestAlertRepository_LatestForRuleHost(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, base)
	latest := insertAlert(t, repo, 1, "host-1", rule.SeverityWarning, base.Add(time.Hour))
	insertAlert(t, repo, 1, "host-2", rule.SeverityWarning, base.Add(2*time.Hour))

	got, err := repo.LatestForRuleHost(ctx, 1, "host-1")
	if err != nil {
		t.Fatalf("LatestForRuleHost() error = %v", err)
	}
	if got == nil || got.ID != latest.ID {
		t.Errorf("LatestForRuleHost() = %+v, want alert %d", got, latest.ID)
	}

	got, err = repo.LatestForRuleHost(ctx, 1, "host-9")
	if err != nil {
		t.Fatalf("LatestForRuleHost() error = %v", err)
	}
	if got != nil {
		t.Errorf("LatestForRuleHost(no history) = %+v, want nil", got)
	}
}

func TestAlertRepository_CountActiveBySeverity(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	insertAlert(t, repo, 1, "host-1", rule.SeverityCritical, now)
	insertAlert(t, repo, 1, "host-2", rule.SeverityCritical, now)
	insertAlert(t, repo, 2, "host-1", rule.SeverityInfo, now)
	done := insertAlert(t, repo, 2, "host-2", rule.SeverityInfo, now)

	resolved := now.Add(time.Minute)
	done.ResolvedAt = &resolved
	if err := repo.Update(ctx, done); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	counts, err := repo.CountActiveBySeverity(ctx)
	if err != nil {
		t.Fatalf("CountActiveBySeverity() error = %v", err)
	}
	if counts[rule.SeverityCritical] != 2 || counts[rule.SeverityInfo] != 1 {
		t.Errorf("counts = %v, want critical=2 info=1", counts)
	}
}

func TestAlertRepository_DeleteResolvedBefore(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := insertAlert(t, repo, 1, "host-1", rule.SeverityInfo, base)
	oldResolved := base.Add(time.Hour)
	old.ResolvedAt = &oldResolved
	if err := repo.Update(ctx, old); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// Unresolved alerts are never purged regardless of age.
	insertAlert(t, repo, 1, "host-2", rule.SeverityInfo, base)

	deleted, err := repo.DeleteResolvedBefore(ctx, base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("DeleteResolvedBefore() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	_, total, err := repo.ListWithPagination(ctx, alert.Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if total != 1 {
		t.Errorf("remaining = %d, want 1", total)
	}
}
