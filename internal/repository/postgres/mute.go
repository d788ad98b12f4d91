package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type MuteRepository struct {
	db *sql.DB
}

func NewMuteRepository(db *sql.DB) mute.Repository {
	return &MuteRepository{db: db}
}

const muteColumns = `id, alert_rule_id, host_id, muted_by, reason, created_at, expires_at`

func (r *MuteRepository) Create(ctx context.Context, m *mute.AlertMute) error {
	query := `
		INSERT INTO alert_mutes (id, alert_rule_id, host_id, muted_by, reason, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.AlertRuleID, m.HostID, m.MutedBy, m.Reason,
		m.CreatedAt.UTC().Format(time.RFC3339), nullableTime(m.ExpiresAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create mute", err)
	}
	return nil
}

func (r *MuteRepository) GetByID(ctx context.Context, id string) (*mute.AlertMute, error) {
	query := fmt.Sprintf("SELECT %s FROM alert_mutes WHERE id = ?", muteColumns)

	m, err := scanMute(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get mute", err)
	}
	return m, nil
}

func (r *MuteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM alert_mutes WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete mute", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Mute")
	}

	return nil
}

func (r *MuteRepository) List(ctx context.Context) ([]*mute.AlertMute, error) {
	query := fmt.Sprintf("SELECT %s FROM alert_mutes ORDER BY created_at DESC", muteColumns)
	return r.queryMutes(ctx, query)
}

func (r *MuteRepository) ListForRule(ctx context.Context, ruleID int64) ([]*mute.AlertMute, error) {
	query := fmt.Sprintf("SELECT %s FROM alert_mutes WHERE alert_rule_id = ? ORDER BY created_at DESC", muteColumns)
	return r.queryMutes(ctx, query, ruleID)
}

func (r *MuteRepository) ActiveForRuleHost(ctx context.Context, ruleID int64, hostID string, at time.Time) (*mute.AlertMute, error) {
	// Host-scoped mutes match the host; network-wide mutes (empty
	// host_id) match every host.
	query := fmt.Sprintf(`
		SELECT %s FROM alert_mutes
		WHERE alert_rule_id = ? AND (host_id = '' OR host_id = ?)
			AND (expires_at IS NULL OR expires_at > ?)
		ORDER BY created_at DESC LIMIT 1
	`, muteColumns)

	m, err := scanMute(r.db.QueryRowContext(ctx, query, ruleID, hostID, at.UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get active mute", err)
	}
	return m, nil
}

func (r *MuteRepository) queryMutes(ctx context.Context, query string, args ...interface{}) ([]*mute.AlertMute, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list mutes", err)
	}
	defer rows.Close()

	mutes := make([]*mute.AlertMute, 0, 16)
	for rows.Next() {
		m, err := scanMute(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan mute", err)
		}
		mutes = append(mutes, m)
	}

	return mutes, rows.Err()
}

func scanMute(row rowScanner) (*mute.AlertMute, error) {
	var m mute.AlertMute
	var createdAt string
	var expiresAt sql.NullString

	err := row.Scan(&m.ID, &m.AlertRuleID, &m.HostID, &m.MutedBy, &m.Reason, &createdAt, &expiresAt)
	if err != nil {
		return nil, err
	}

	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.ExpiresAt = parseNullableTime(expiresAt)

	return &m, nil
}
