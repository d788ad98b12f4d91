package services

import (
	"context"
	"errors"
	"testing"

	"github.com/netpulse/netpulse/internal/domain/rule"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/testutil"
)

func validRule() *rule.AlertRule {
	return &rule.AlertRule{
		Name:            "High CPU",
		MetricName:      "cpu_percent",
		Condition:       "gte",
		Threshold:       90,
		Severity:        rule.SeverityWarning,
		CooldownMinutes: 15,
		Enabled:         true,
	}
}

func TestRuleService_Create(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	r := validRule()
	id, err := svc.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Create() returned id 0")
	}
	if repo.Rules[id] == nil {
		t.Fatal("rule was not persisted")
	}
	// Rule type defaults to threshold when omitted.
	if repo.Rules[id].RuleType != rule.TypeThreshold {
		t.Errorf("RuleType = %q, want %q", repo.Rules[id].RuleType, rule.TypeThreshold)
	}
}

func TestRuleService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *rule.AlertRule)
	}{
		{"missing name", func(r *rule.AlertRule) { r.Name = "" }},
		{"missing metric", func(r *rule.AlertRule) { r.MetricName = "" }},
		{"bad condition", func(r *rule.AlertRule) { r.Condition = "between" }},
		{"bad severity", func(r *rule.AlertRule) { r.Severity = "fatal" }},
		{"negative cooldown", func(r *rule.AlertRule) { r.CooldownMinutes = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockRuleRepository()
			svc := NewRuleService(repo, testLogger())

			r := validRule()
			tt.mutate(r)

			_, err := svc.Create(context.Background(), r)
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
				t.Errorf("Create() error = %v, want a 400 AppError", err)
			}
			if len(repo.Rules) != 0 {
				t.Error("invalid rule was persisted")
			}
		})
	}
}

func TestRuleService_GetByIDNotFound(t *testing.T) {
	svc := NewRuleService(testutil.NewMockRuleRepository(), testLogger())

	_, err := svc.GetByID(context.Background(), 42)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("GetByID() error = %v, want a 404 AppError", err)
	}
}

func TestRuleService_Update(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	r := validRule()
	id, err := svc.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(context.Background(), id, map[string]interface{}{
		"threshold": 95.0,
		"severity":  rule.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Threshold != 95 {
		t.Errorf("Threshold = %v, want 95", updated.Threshold)
	}
	if updated.Severity != rule.SeverityCritical {
		t.Errorf("Severity = %q, want critical", updated.Severity)
	}
	// Untouched fields survive.
	if updated.MetricName != "cpu_percent" {
		t.Errorf("MetricName = %q, want cpu_percent", updated.MetricName)
	}
}

func TestRuleService_UpdateRejectsInvalid(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	id, err := svc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(context.Background(), id, map[string]interface{}{
		"condition": "approximately",
	})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("Update() error = %v, want a 400 AppError", err)
	}
	// The stored rule is unchanged.
	if repo.Rules[id].Condition != "gte" {
		t.Errorf("stored condition = %q, want gte", repo.Rules[id].Condition)
	}
}

func TestRuleService_Delete(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	id, err := svc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if repo.Rules[id] != nil {
		t.Error("rule still present after delete")
	}

	err = svc.Delete(context.Background(), id)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("second Delete() error = %v, want a 404 AppError", err)
	}
}

func TestRuleService_EnableDisable(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	id, err := svc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Disable(context.Background(), id); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	if repo.Rules[id].Enabled {
		t.Error("rule still enabled after Disable")
	}

	if err := svc.Enable(context.Background(), id); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	if !repo.Rules[id].Enabled {
		t.Error("rule still disabled after Enable")
	}
}

func TestRuleService_ListFilters(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	svc := NewRuleService(repo, testLogger())

	cpu := validRule()
	mem := validRule()
	mem.Name = "High Memory"
	mem.MetricName = "mem_percent"
	mem.Severity = rule.SeverityCritical
	mem.Enabled = false

	if _, err := svc.Create(context.Background(), cpu); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), mem); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.List(context.Background(), rule.Filter{MetricName: "mem_percent"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "High Memory" {
		t.Errorf("List(metric=mem_percent) = %d rules, want the memory rule", len(got))
	}

	enabled := true
	got, err = svc.List(context.Background(), rule.Filter{Enabled: &enabled})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "High CPU" {
		t.Errorf("List(enabled=true) = %d rules, want the cpu rule", len(got))
	}
}
