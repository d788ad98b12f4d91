package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) alert.Repository {
	return &AlertRepository{db: db}
}

const alertColumns = `id, alert_rule_id, host_id, host_name, metric_name, value, threshold,
	severity, message, triggered_at, acknowledged_at, acknowledged_by, resolved_at`

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	query := `
		INSERT INTO alerts (alert_rule_id, host_id, host_name, metric_name, value, threshold,
			severity, message, triggered_at, acknowledged_at, acknowledged_by, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.AlertRuleID, a.HostID, a.HostName, a.MetricName, a.Value, a.Threshold,
		a.Severity, a.Message, a.TriggeredAt.UTC().Format(time.RFC3339),
		nullableTime(a.AcknowledgedAt), a.AcknowledgedBy, nullableTime(a.ResolvedAt),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create alert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get alert ID", err)
	}
	a.ID = id

	return id, nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	query := fmt.Sprintf("SELECT %s FROM alerts WHERE id = ?", alertColumns)

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	query := `
		UPDATE alerts SET severity = ?, message = ?, acknowledged_at = ?, acknowledged_by = ?, resolved_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Severity, a.Message, nullableTime(a.AcknowledgedAt), a.AcknowledgedBy,
		nullableTime(a.ResolvedAt), a.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update alert", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert")
	}

	return nil
}

func (r *AlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.AlertRuleID != 0 {
		where = append(where, "alert_rule_id = ?")
		args = append(args, filter.AlertRuleID)
	}
	if filter.HostID != "" {
		where = append(where, "host_id = ?")
		args = append(args, filter.HostID)
	}
	if filter.MetricName != "" {
		where = append(where, "metric_name = ?")
		args = append(args, filter.MetricName)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}
	if filter.ActiveOnly {
		where = append(where, "resolved_at IS NULL")
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM alerts WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count alerts", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM alerts WHERE %s ORDER BY triggered_at DESC, id DESC LIMIT ? OFFSET ?
	`, alertColumns, whereClause)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0, limit)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, total, rows.Err()
}

func (r *AlertRepository) LatestForRuleHost(ctx context.Context, ruleID int64, hostID string) (*alert.Alert, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM alerts WHERE alert_rule_id = ? AND host_id = ?
		ORDER BY triggered_at DESC, id DESC LIMIT 1
	`, alertColumns)

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, ruleID, hostID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest alert", err)
	}
	return a, nil
}

func (r *AlertRepository) CountActiveBySeverity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT severity, COUNT(*) FROM alerts WHERE resolved_at IS NULL GROUP BY severity")
	if err != nil {
		return nil, errors.DatabaseError("Failed to count active alerts", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan alert count", err)
		}
		counts[severity] = count
	}

	return counts, rows.Err()
}

func (r *AlertRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM alerts WHERE resolved_at IS NOT NULL AND resolved_at < ?",
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete resolved alerts", err)
	}
	return result.RowsAffected()
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var triggeredAt string
	var acknowledgedAt, resolvedAt sql.NullString

	err := row.Scan(
		&a.ID, &a.AlertRuleID, &a.HostID, &a.HostName, &a.MetricName, &a.Value,
		&a.Threshold, &a.Severity, &a.Message, &triggeredAt,
		&acknowledgedAt, &a.AcknowledgedBy, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	a.TriggeredAt, _ = time.Parse(time.RFC3339, triggeredAt)
	a.AcknowledgedAt = parseNullableTime(acknowledgedAt)
	a.ResolvedAt = parseNullableTime(resolvedAt)

	return &a, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
