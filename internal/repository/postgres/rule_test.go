package postgres

import (
	"context"
	"reflect"
	"testing"

	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/testutil"
)

func sampleRule() *rule.AlertRule {
	return &rule.AlertRule{
		Name:                 "High CPU",
		Description:          "CPU above 90% for a poll cycle",
		RuleType:             rule.TypeThreshold,
		MetricName:           "cpu_percent",
		Condition:            "gte",
		Threshold:            90,
		Severity:             rule.SeverityWarning,
		NotificationChannels: []string{"ch-1", "ch-2"},
		CooldownMinutes:      15,
		Enabled:              true,
	}
}

func TestRuleRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	want := sampleRule()
	id, err := repo.Create(ctx, want)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Create() returned id 0")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil for an existing rule")
	}
	if got.Name != want.Name || got.MetricName != want.MetricName ||
		got.Condition != want.Condition || got.Threshold != want.Threshold {
		t.Errorf("GetByID() = %+v, want fields of %+v", got, want)
	}
	if !reflect.DeepEqual(got.NotificationChannels, want.NotificationChannels) {
		t.Errorf("NotificationChannels = %v, want %v", got.NotificationChannels, want.NotificationChannels)
	}
	if !got.Enabled {
		t.Error("Enabled flag lost in round trip")
	}
}

func TestRuleRepository_GetByIDMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID(missing) = %+v, want nil", got)
	}
}

func TestRuleRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	r := sampleRule()
	id, err := repo.Create(ctx, r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r.Threshold = 95
	r.Severity = rule.SeverityCritical
	r.NotificationChannels = []string{"ch-3"}
	if err := repo.Update(ctx, r); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Threshold != 95 || got.Severity != rule.SeverityCritical {
		t.Errorf("updated rule = %+v", got)
	}
	if !reflect.DeepEqual(got.NotificationChannels, []string{"ch-3"}) {
		t.Errorf("NotificationChannels = %v, want [ch-3]", got.NotificationChannels)
	}
}

func TestRuleRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	cpu := sampleRule()
	if _, err := repo.Create(ctx, cpu); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mem := sampleRule()
	mem.Name = "High Memory"
	mem.MetricName = "mem_percent"
	mem.Severity = rule.SeverityCritical
	mem.HostID = "host-1"
	mem.Enabled = false
	if _, err := repo.Create(ctx, mem); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name   string
		filter rule.Filter
		want   int
	}{
		{"no filter", rule.Filter{}, 2},
		{"by metric", rule.Filter{MetricName: "mem_percent"}, 1},
		{"by severity", rule.Filter{Severity: rule.SeverityCritical}, 1},
		{"by host", rule.Filter{HostID: "host-1"}, 1},
		{"enabled only", rule.Filter{Enabled: boolPtr(true)}, 1},
		{"disabled only", rule.Filter{Enabled: boolPtr(false)}, 1},
		{"no match", rule.Filter{MetricName: "temperature_c"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List(%+v) = %d rules, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestRuleRepository_ListEnabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	on := sampleRule()
	off := sampleRule()
	off.Name = "Disabled Rule"
	off.Enabled = false
	if _, err := repo.Create(ctx, on); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(ctx, off); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "High CPU" {
		t.Errorf("ListEnabled() = %d rules, want only the enabled one", len(got))
	}
}

func TestRuleRepository_SetEnabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetEnabled(ctx, id, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Enabled {
		t.Error("rule still enabled after SetEnabled(false)")
	}

	if err := repo.SetEnabled(ctx, 999, true); err == nil {
		t.Error("SetEnabled(missing) error = nil, want not found")
	}
}

func TestRuleRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("rule still present after delete: %+v", got)
	}
}

func boolPtr(b bool) *bool { return &b }
