package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/metrics"
)

type MetricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) metric.Repository {
	return &MetricRepository{db: db}
}

const metricColumns = `id, host_id, metric_name, value, unit, recorded_at`

func (r *MetricRepository) Insert(ctx context.Context, m *metric.Metric) error {
	query := `
		INSERT INTO metrics (host_id, metric_name, value, unit, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.HostID, m.MetricName, m.Value, m.Unit, m.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert metric", err)
	}
	return nil
}

func (r *MetricRepository) InsertBatch(ctx context.Context, ms []*metric.Metric) error {
	if len(ms) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metrics (host_id, metric_name, value, unit, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return errors.DatabaseError("Failed to prepare metric insert", err)
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.ExecContext(ctx,
			m.HostID, m.MetricName, m.Value, m.Unit, m.RecordedAt.UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return errors.DatabaseError("Failed to insert metric batch", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit metric batch", err)
	}

	metrics.RecordDBQuery("insert_batch", "metrics", time.Since(start))
	return nil
}

func (r *MetricRepository) GetLatest(ctx context.Context, hostID string) ([]*metric.Metric, error) {
	// One row per metric name, the newest sample winning
	query := `
		SELECT m.id, m.host_id, m.metric_name, m.value, m.unit, m.recorded_at
		FROM metrics m
		WHERE m.host_id = ? AND m.id = (
			SELECT id FROM metrics
			WHERE host_id = m.host_id AND metric_name = m.metric_name
			ORDER BY recorded_at DESC, id DESC LIMIT 1
		)
		ORDER BY m.metric_name
	`

	rows, err := r.db.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest metrics", err)
	}
	defer rows.Close()

	return scanMetrics(rows)
}

func (r *MetricRepository) LatestFor(ctx context.Context, hostID, metricName string) (*metric.Metric, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM metrics WHERE host_id = ? AND metric_name = ?
		ORDER BY recorded_at DESC, id DESC LIMIT 1
	`, metricColumns)

	m, err := scanMetric(r.db.QueryRowContext(ctx, query, hostID, metricName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest metric", err)
	}
	return m, nil
}

func (r *MetricRepository) GetByTimeRange(ctx context.Context, hostID, metricName string, start, end time.Time) ([]*metric.Metric, error) {
	began := time.Now()

	query := fmt.Sprintf(`
		SELECT %s FROM metrics
		WHERE host_id = ? AND metric_name = ? AND recorded_at >= ? AND recorded_at <= ?
		ORDER BY recorded_at, id
	`, metricColumns)

	rows, err := r.db.QueryContext(ctx, query,
		hostID, metricName,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get metric history", err)
	}
	defer rows.Close()

	ms, err := scanMetrics(rows)
	if err != nil {
		return nil, err
	}

	metrics.RecordDBQuery("range", "metrics", time.Since(began))
	return ms, nil
}

func (r *MetricRepository) HostsReporting(ctx context.Context, metricName string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT host_id FROM metrics WHERE metric_name = ? ORDER BY host_id", metricName)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list reporting hosts", err)
	}
	defer rows.Close()

	hosts := make([]string, 0, 16)
	for rows.Next() {
		var hostID string
		if err := rows.Scan(&hostID); err != nil {
			return nil, errors.DatabaseError("Failed to scan host", err)
		}
		hosts = append(hosts, hostID)
	}

	return hosts, rows.Err()
}

func (r *MetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM metrics WHERE recorded_at < ?", cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete old metrics", err)
	}
	return result.RowsAffected()
}

func scanMetrics(rows *sql.Rows) ([]*metric.Metric, error) {
	ms := make([]*metric.Metric, 0, 100)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan metric", err)
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

func scanMetric(row rowScanner) (*metric.Metric, error) {
	var m metric.Metric
	var recordedAt string

	err := row.Scan(&m.ID, &m.HostID, &m.MetricName, &m.Value, &m.Unit, &recordedAt)
	if err != nil {
		return nil, err
	}

	m.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	return &m, nil
}
