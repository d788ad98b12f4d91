// Package engine evaluates alert rules against the most recent metric
// samples and persists newly triggered alerts.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/metrics"
)

// Engine evaluates enabled rules against latest metrics
type Engine struct {
	rules   rule.Repository
	alerts  alert.Repository
	mutes   mute.Repository
	samples metric.Reader
	devices device.Repository
	logger  *logger.Logger
	now     func() time.Time
}

// New creates an alert engine. devices may be nil; host names are then
// left as host ids.
func New(
	rules rule.Repository,
	alerts alert.Repository,
	mutes mute.Repository,
	samples metric.Reader,
	devices device.Repository,
	log *logger.Logger,
) *Engine {
	return &Engine{
		rules:   rules,
		alerts:  alerts,
		mutes:   mutes,
		samples: samples,
		devices: devices,
		logger:  log,
		now:     time.Now,
	}
}

// SetClock overrides the engine clock
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// EvaluateAllRules evaluates every enabled rule against the latest
// metric samples and returns the newly created alerts. A failure inside
// one rule's evaluation is logged and does not abort the remaining
// rules; a failure listing the rules aborts the whole pass.
func (e *Engine) EvaluateAllRules(ctx context.Context) ([]*alert.Alert, error) {
	start := e.now()
	rules, err := e.rules.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled rules: %w", err)
	}

	fired := []*alert.Alert{}
	for _, r := range rules {
		created, err := e.evaluateRule(ctx, r)
		if err != nil {
			metrics.RecordRuleEvaluation("error")
			e.logger.WithFields(map[string]interface{}{
				"rule_id":   r.ID,
				"rule_name": r.Name,
			}).ErrorWithErr(err, "Rule evaluation failed")
			continue
		}
		fired = append(fired, created...)
	}

	metrics.RecordEvaluationPass(e.now().Sub(start))
	return fired, nil
}

// evaluateRule evaluates one rule for every host in its scope
func (e *Engine) evaluateRule(ctx context.Context, r *rule.AlertRule) ([]*alert.Alert, error) {
	hosts, err := e.ruleHosts(ctx, r)
	if err != nil {
		return nil, err
	}

	var created []*alert.Alert
	for _, hostID := range hosts {
		a, err := e.evaluateForHost(ctx, r, hostID)
		if err != nil {
			return created, err
		}
		if a != nil {
			created = append(created, a)
		}
	}
	return created, nil
}

func (e *Engine) ruleHosts(ctx context.Context, r *rule.AlertRule) ([]string, error) {
	if r.HostID != "" {
		return []string{r.HostID}, nil
	}
	return e.samples.HostsReporting(ctx, r.MetricName)
}

func (e *Engine) evaluateForHost(ctx context.Context, r *rule.AlertRule, hostID string) (*alert.Alert, error) {
	latest, err := e.samples.LatestFor(ctx, hostID, r.MetricName)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		// No data for this metric is a skip, not a failure
		metrics.RecordRuleEvaluation("no_data")
		return nil, nil
	}

	now := e.now()

	m, err := e.mutes.ActiveForRuleHost(ctx, r.ID, hostID, now)
	if err != nil {
		return nil, err
	}
	if m != nil {
		metrics.RecordRuleEvaluation("muted")
		return nil, nil
	}

	if r.CooldownMinutes > 0 {
		last, err := e.alerts.LatestForRuleHost(ctx, r.ID, hostID)
		if err != nil {
			return nil, err
		}
		if last != nil && now.Sub(last.TriggeredAt) < r.Cooldown() {
			metrics.RecordRuleEvaluation("cooldown")
			return nil, nil
		}
	}

	if !CheckThreshold(latest.Value, r.Condition, r.Threshold) {
		metrics.RecordRuleEvaluation("skipped")
		return nil, nil
	}

	a := &alert.Alert{
		AlertRuleID: r.ID,
		HostID:      hostID,
		HostName:    e.hostName(ctx, hostID),
		MetricName:  r.MetricName,
		Value:       latest.Value,
		Threshold:   r.Threshold,
		Severity:    r.Severity,
		Message:     formatMessage(r.MetricName, latest.Value, r.Condition, r.Threshold),
		TriggeredAt: now,
	}

	id, err := e.alerts.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id

	metrics.RecordRuleEvaluation("fired")
	metrics.RecordAlertFired(r.Severity)
	e.logger.WithFields(map[string]interface{}{
		"alert_id": id,
		"rule_id":  r.ID,
		"host_id":  hostID,
		"metric":   r.MetricName,
		"value":    latest.Value,
		"severity": r.Severity,
	}).Info("Alert triggered")

	return a, nil
}

func (e *Engine) hostName(ctx context.Context, hostID string) string {
	if e.devices == nil {
		return hostID
	}
	d, err := e.devices.GetByID(ctx, hostID)
	if err != nil || d == nil {
		return hostID
	}
	return d.Name
}

// CheckThreshold compares a value against a rule threshold.
// gt and lt are strict; eq and ne compare floats exactly, with no
// epsilon tolerance, which is fragile against sensor noise but matches
// the stored rule semantics.
func CheckThreshold(value float64, condition string, threshold float64) bool {
	switch condition {
	case rule.ConditionGT:
		return value > threshold
	case rule.ConditionGTE:
		return value >= threshold
	case rule.ConditionLT:
		return value < threshold
	case rule.ConditionLTE:
		return value <= threshold
	case rule.ConditionEQ:
		return value == threshold
	case rule.ConditionNE:
		return value != threshold
	default:
		return false
	}
}

// formatMessage renders "<metric> is <value> (threshold: <condition> <threshold>)"
func formatMessage(metricName string, value float64, condition string, threshold float64) string {
	return fmt.Sprintf("%s is %s (threshold: %s %s)",
		metricName, formatFloat(value), condition, formatFloat(threshold))
}

// formatFloat keeps at least one decimal so 90 renders as "90.0"
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}
