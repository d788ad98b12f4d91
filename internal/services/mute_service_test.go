package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/testutil"
)

func TestMuteService_Mute(t *testing.T) {
	rules := testutil.NewMockRuleRepository()
	mutes := testutil.NewMockMuteRepository()
	ruleSvc := NewRuleService(rules, testLogger())
	svc := NewMuteService(mutes, rules, testLogger())

	ruleID, err := ruleSvc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create rule error = %v", err)
	}

	expires := time.Now().Add(2 * time.Hour)
	m, err := svc.Mute(context.Background(), ruleID, "host-1", "alice", "maintenance window", &expires)
	if err != nil {
		t.Fatalf("Mute() error = %v", err)
	}
	if m.ID == "" {
		t.Error("mute id not assigned")
	}
	if m.AlertRuleID != ruleID || m.HostID != "host-1" || m.MutedBy != "alice" {
		t.Errorf("mute = %+v, want rule %d host-1 by alice", m, ruleID)
	}
	if mutes.Mutes[m.ID] == nil {
		t.Error("mute was not persisted")
	}
}

func TestMuteService_MuteUnknownRule(t *testing.T) {
	svc := NewMuteService(testutil.NewMockMuteRepository(), testutil.NewMockRuleRepository(), testLogger())

	_, err := svc.Mute(context.Background(), 42, "", "alice", "", nil)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("Mute() error = %v, want a 404 AppError", err)
	}
}

func TestMuteService_MuteExpiryInPast(t *testing.T) {
	rules := testutil.NewMockRuleRepository()
	ruleSvc := NewRuleService(rules, testLogger())
	svc := NewMuteService(testutil.NewMockMuteRepository(), rules, testLogger())

	ruleID, err := ruleSvc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create rule error = %v", err)
	}

	past := time.Now().Add(-time.Minute)
	_, err = svc.Mute(context.Background(), ruleID, "", "alice", "", &past)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("Mute() error = %v, want a 400 AppError", err)
	}
}

func TestMuteService_Unmute(t *testing.T) {
	rules := testutil.NewMockRuleRepository()
	mutes := testutil.NewMockMuteRepository()
	ruleSvc := NewRuleService(rules, testLogger())
	svc := NewMuteService(mutes, rules, testLogger())

	ruleID, err := ruleSvc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create rule error = %v", err)
	}

	m, err := svc.Mute(context.Background(), ruleID, "", "alice", "", nil)
	if err != nil {
		t.Fatalf("Mute() error = %v", err)
	}

	if err := svc.Unmute(context.Background(), m.ID); err != nil {
		t.Fatalf("Unmute() error = %v", err)
	}
	if mutes.Mutes[m.ID] != nil {
		t.Error("mute still present after Unmute")
	}

	err = svc.Unmute(context.Background(), m.ID)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("second Unmute() error = %v, want a 404 AppError", err)
	}
}

func TestMuteService_ListForRule(t *testing.T) {
	rules := testutil.NewMockRuleRepository()
	mutes := testutil.NewMockMuteRepository()
	ruleSvc := NewRuleService(rules, testLogger())
	svc := NewMuteService(mutes, rules, testLogger())

	firstID, err := ruleSvc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create rule error = %v", err)
	}
	other := validRule()
	other.Name = "High Memory"
	other.MetricName = "mem_percent"
	secondID, err := ruleSvc.Create(context.Background(), other)
	if err != nil {
		t.Fatalf("Create rule error = %v", err)
	}

	if _, err := svc.Mute(context.Background(), firstID, "", "alice", "", nil); err != nil {
		t.Fatalf("Mute() error = %v", err)
	}
	if _, err := svc.Mute(context.Background(), secondID, "", "alice", "", nil); err != nil {
		t.Fatalf("Mute() error = %v", err)
	}

	got, err := svc.ListForRule(context.Background(), firstID)
	if err != nil {
		t.Fatalf("ListForRule() error = %v", err)
	}
	if len(got) != 1 || got[0].AlertRuleID != firstID {
		t.Errorf("ListForRule(%d) = %d mutes, want 1 for that rule", firstID, len(got))
	}
}
