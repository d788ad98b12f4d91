package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) rule.Repository {
	return &RuleRepository{db: db}
}

const ruleColumns = `id, name, description, rule_type, metric_name, condition, threshold,
	severity, host_id, notification_channels, cooldown_minutes, enabled, created_at, updated_at`

func (r *RuleRepository) Create(ctx context.Context, ar *rule.AlertRule) (int64, error) {
	now := time.Now().UTC()
	ar.CreatedAt = now
	ar.UpdatedAt = now

	channels, err := json.Marshal(ar.NotificationChannels)
	if err != nil {
		return 0, errors.DatabaseError("Failed to encode notification channels", err)
	}

	query := `
		INSERT INTO alert_rules (name, description, rule_type, metric_name, condition, threshold,
			severity, host_id, notification_channels, cooldown_minutes, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		ar.Name, ar.Description, ar.RuleType, ar.MetricName, ar.Condition, ar.Threshold,
		ar.Severity, ar.HostID, string(channels), ar.CooldownMinutes, boolToInt(ar.Enabled),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create alert rule", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get alert rule ID", err)
	}
	ar.ID = id

	return id, nil
}

func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*rule.AlertRule, error) {
	query := fmt.Sprintf("SELECT %s FROM alert_rules WHERE id = ?", ruleColumns)

	ar, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert rule", err)
	}
	return ar, nil
}

func (r *RuleRepository) Update(ctx context.Context, ar *rule.AlertRule) error {
	ar.UpdatedAt = time.Now().UTC()

	channels, err := json.Marshal(ar.NotificationChannels)
	if err != nil {
		return errors.DatabaseError("Failed to encode notification channels", err)
	}

	query := `
		UPDATE alert_rules SET name = ?, description = ?, rule_type = ?, metric_name = ?,
			condition = ?, threshold = ?, severity = ?, host_id = ?, notification_channels = ?,
			cooldown_minutes = ?, enabled = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ar.Name, ar.Description, ar.RuleType, ar.MetricName,
		ar.Condition, ar.Threshold, ar.Severity, ar.HostID, string(channels),
		ar.CooldownMinutes, boolToInt(ar.Enabled), ar.UpdatedAt.Format(time.RFC3339),
		ar.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update alert rule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert rule")
	}

	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM alert_rules WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete alert rule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert rule")
	}

	return nil
}

func (r *RuleRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.AlertRule, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.RuleType != "" {
		where = append(where, "rule_type = ?")
		args = append(args, filter.RuleType)
	}
	if filter.MetricName != "" {
		where = append(where, "metric_name = ?")
		args = append(args, filter.MetricName)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}
	if filter.HostID != "" {
		where = append(where, "host_id = ?")
		args = append(args, filter.HostID)
	}
	if filter.Enabled != nil {
		where = append(where, "enabled = ?")
		args = append(args, boolToInt(*filter.Enabled))
	}

	query := fmt.Sprintf("SELECT %s FROM alert_rules WHERE %s ORDER BY id",
		ruleColumns, strings.Join(where, " AND "))

	return r.queryRules(ctx, query, args...)
}

func (r *RuleRepository) ListEnabled(ctx context.Context) ([]*rule.AlertRule, error) {
	query := fmt.Sprintf("SELECT %s FROM alert_rules WHERE enabled = 1 ORDER BY id", ruleColumns)
	return r.queryRules(ctx, query)
}

func (r *RuleRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE alert_rules SET enabled = ?, updated_at = ? WHERE id = ?",
		boolToInt(enabled), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to toggle alert rule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert rule")
	}

	return nil
}

func (r *RuleRepository) queryRules(ctx context.Context, query string, args ...interface{}) ([]*rule.AlertRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list alert rules", err)
	}
	defer rows.Close()

	rules := make([]*rule.AlertRule, 0, 32)
	for rows.Next() {
		ar, err := scanRule(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan alert rule", err)
		}
		rules = append(rules, ar)
	}

	return rules, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*rule.AlertRule, error) {
	var ar rule.AlertRule
	var channels string
	var enabled int
	var createdAt, updatedAt string

	err := row.Scan(
		&ar.ID, &ar.Name, &ar.Description, &ar.RuleType, &ar.MetricName, &ar.Condition,
		&ar.Threshold, &ar.Severity, &ar.HostID, &channels, &ar.CooldownMinutes,
		&enabled, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(channels), &ar.NotificationChannels); err != nil {
		ar.NotificationChannels = nil
	}
	ar.Enabled = enabled != 0
	ar.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ar.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &ar, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
