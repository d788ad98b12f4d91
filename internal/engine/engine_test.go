package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/testutil"
)

func TestCheckThreshold(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		condition string
		threshold float64
		want      bool
	}{
		{"gt above", 95.5, "gt", 90, true},
		{"gt at threshold is strict", 90, "gt", 90, false},
		{"gt below", 85, "gt", 90, false},
		{"gte at threshold", 90, "gte", 90, true},
		{"gte above", 90.1, "gte", 90, true},
		{"gte below", 89.9, "gte", 90, false},
		{"lt below", 5, "lt", 10, true},
		{"lt at threshold is strict", 10, "lt", 10, false},
		{"lte at threshold", 10, "lte", 10, true},
		{"lte above", 10.1, "lte", 10, false},
		{"eq equal", 42, "eq", 42, true},
		{"eq not equal", 42.0001, "eq", 42, false},
		{"ne not equal", 1, "ne", 0, true},
		{"ne equal", 0, "ne", 0, false},
		{"unknown condition", 100, "between", 90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckThreshold(tt.value, tt.condition, tt.threshold)
			if got != tt.want {
				t.Errorf("CheckThreshold(%v, %q, %v) = %v, want %v",
					tt.value, tt.condition, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	got := formatMessage("cpu_percent", 95.5, "gte", 90)
	if !strings.Contains(got, "95.5") {
		t.Errorf("message %q does not contain the observed value", got)
	}
	if !strings.Contains(got, "90.0") {
		t.Errorf("message %q does not contain the threshold", got)
	}
	if !strings.Contains(got, "cpu_percent") {
		t.Errorf("message %q does not contain the metric name", got)
	}
}

type engineFixture struct {
	engine  *Engine
	rules   *testutil.MockRuleRepository
	alerts  *testutil.MockAlertRepository
	mutes   *testutil.MockMuteRepository
	samples *testutil.MockMetricRepository
	devices *testutil.MockDeviceRepository
	clock   time.Time
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		rules:   testutil.NewMockRuleRepository(),
		alerts:  testutil.NewMockAlertRepository(),
		mutes:   testutil.NewMockMuteRepository(),
		samples: testutil.NewMockMetricRepository(),
		devices: testutil.NewMockDeviceRepository(),
		clock:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	f.engine = New(f.rules, f.alerts, f.mutes, f.samples, f.devices, log)
	f.engine.SetClock(func() time.Time { return f.clock })
	return f
}

func (f *engineFixture) addRule(t *testing.T, r *rule.AlertRule) *rule.AlertRule {
	t.Helper()
	if r.RuleType == "" {
		r.RuleType = rule.TypeThreshold
	}
	if _, err := f.rules.Create(context.Background(), r); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}
	return r
}

func TestEvaluateAllRules_FiresOnBreach(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityCritical,
		Enabled:    true,
	})
	f.samples.Seed("aa:bb:cc:dd:ee:ff", "cpu_percent", 95.5, f.clock.Add(-time.Minute))

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("EvaluateAllRules() fired %d alerts, want 1", len(fired))
	}

	a := fired[0]
	if a.HostID != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("alert host = %q, want aa:bb:cc:dd:ee:ff", a.HostID)
	}
	if a.Value != 95.5 {
		t.Errorf("alert value = %v, want 95.5", a.Value)
	}
	if a.Severity != rule.SeverityCritical {
		t.Errorf("alert severity = %q, want critical", a.Severity)
	}
	if !strings.Contains(a.Message, "95.5") || !strings.Contains(a.Message, "90.0") {
		t.Errorf("alert message %q should mention value and threshold", a.Message)
	}
	if len(f.alerts.Alerts) != 1 {
		t.Errorf("alert was not persisted")
	}
}

func TestEvaluateAllRules_NoBreachNoAlert(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gt",
		Threshold:  90,
		Severity:   rule.SeverityWarning,
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 90, f.clock.Add(-time.Minute))

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 0 {
		t.Errorf("gt at exactly the threshold fired %d alerts, want 0", len(fired))
	}
}

func TestEvaluateAllRules_SkipsDisabledRules(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:       "disabled rule",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  1,
		Severity:   rule.SeverityInfo,
		Enabled:    false,
	})
	f.samples.Seed("host-1", "cpu_percent", 99, f.clock)

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 0 {
		t.Errorf("disabled rule fired %d alerts, want 0", len(fired))
	}
}

func TestEvaluateAllRules_CooldownSuppressesRepeat(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:            "high cpu",
		MetricName:      "cpu_percent",
		Condition:       "gte",
		Threshold:       90,
		Severity:        rule.SeverityCritical,
		CooldownMinutes: 15,
		Enabled:         true,
	})
	f.samples.Seed("host-1", "cpu_percent", 95.5, f.clock)

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("first evaluation error = %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("first evaluation fired %d alerts, want 1", len(fired))
	}

	// Still breaching five minutes later, inside the cooldown window
	f.clock = f.clock.Add(5 * time.Minute)
	f.samples.Seed("host-1", "cpu_percent", 97, f.clock)

	fired, err = f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("second evaluation error = %v", err)
	}
	if len(fired) != 0 {
		t.Errorf("evaluation inside cooldown fired %d alerts, want 0", len(fired))
	}

	// Past the cooldown the rule fires again
	f.clock = f.clock.Add(11 * time.Minute)
	f.samples.Seed("host-1", "cpu_percent", 96, f.clock)

	fired, err = f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("third evaluation error = %v", err)
	}
	if len(fired) != 1 {
		t.Errorf("evaluation after cooldown fired %d alerts, want 1", len(fired))
	}
}

func TestEvaluateAllRules_MuteSuppresses(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	r := f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityCritical,
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 99, f.clock)

	expires := f.clock.Add(time.Hour)
	f.mutes.Mutes["m-1"] = &mute.AlertMute{
		ID:          "m-1",
		AlertRuleID: r.ID,
		CreatedAt:   f.clock,
		ExpiresAt:   &expires,
	}

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 0 {
		t.Errorf("muted rule fired %d alerts, want 0", len(fired))
	}

	// Removing the mute lets the rule fire
	delete(f.mutes.Mutes, "m-1")

	fired, err = f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() after unmute error = %v", err)
	}
	if len(fired) != 1 {
		t.Errorf("unmuted rule fired %d alerts, want 1", len(fired))
	}
}

func TestEvaluateAllRules_HostScopedMute(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	r := f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityWarning,
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 95, f.clock)
	f.samples.Seed("host-2", "cpu_percent", 96, f.clock)

	// Mute only host-1; host-2 must still alert
	f.mutes.Mutes["m-1"] = &mute.AlertMute{
		ID:          "m-1",
		AlertRuleID: r.ID,
		HostID:      "host-1",
		CreatedAt:   f.clock,
	}

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("fired %d alerts, want 1", len(fired))
	}
	if fired[0].HostID != "host-2" {
		t.Errorf("alert host = %q, want host-2", fired[0].HostID)
	}
}

func TestEvaluateAllRules_ExpiredMuteDoesNotSuppress(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	r := f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityWarning,
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 95, f.clock)

	expired := f.clock.Add(-time.Minute)
	f.mutes.Mutes["m-1"] = &mute.AlertMute{
		ID:          "m-1",
		AlertRuleID: r.ID,
		CreatedAt:   f.clock.Add(-time.Hour),
		ExpiresAt:   &expired,
	}

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 1 {
		t.Errorf("expired mute suppressed the alert, fired %d, want 1", len(fired))
	}
}

func TestEvaluateAllRules_HostScopedRule(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:       "gateway cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityCritical,
		HostID:     "host-1",
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 95, f.clock)
	f.samples.Seed("host-2", "cpu_percent", 99, f.clock)

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("fired %d alerts, want 1", len(fired))
	}
	if fired[0].HostID != "host-1" {
		t.Errorf("host-scoped rule alerted on %q, want host-1", fired[0].HostID)
	}
}

func TestEvaluateAllRules_UsesLatestSampleOnly(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityWarning,
		Enabled:    true,
	})

	// An older breaching sample followed by a healthy one
	f.samples.Seed("host-1", "cpu_percent", 99, f.clock.Add(-10*time.Minute))
	f.samples.Seed("host-1", "cpu_percent", 40, f.clock.Add(-time.Minute))

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 0 {
		t.Errorf("stale breach fired %d alerts, want 0", len(fired))
	}
}

func TestEvaluateAllRules_ResolvesHostName(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.devices.Devices["host-1"] = &device.Device{
		ID:   "host-1",
		Name: "Office Gateway",
	}
	f.addRule(t, &rule.AlertRule{
		Name:       "high cpu",
		MetricName: "cpu_percent",
		Condition:  "gte",
		Threshold:  90,
		Severity:   rule.SeverityWarning,
		Enabled:    true,
	})
	f.samples.Seed("host-1", "cpu_percent", 95, f.clock)

	fired, err := f.engine.EvaluateAllRules(ctx)
	if err != nil {
		t.Fatalf("EvaluateAllRules() error = %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("fired %d alerts, want 1", len(fired))
	}
	if fired[0].HostName != "Office Gateway" {
		t.Errorf("alert host name = %q, want Office Gateway", fired[0].HostName)
	}
}
