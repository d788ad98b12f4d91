package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type ChannelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) channel.Repository {
	return &ChannelRepository{db: db}
}

const channelColumns = `id, name, channel_type, config, enabled, created_at, updated_at`

func (r *ChannelRepository) Create(ctx context.Context, c *channel.NotificationChannel) error {
	query := `
		INSERT INTO notification_channels (id, name, channel_type, config, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.ChannelType, string(c.Config), boolToInt(c.Enabled),
		c.CreatedAt.UTC().Format(time.RFC3339), c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create notification channel", err)
	}
	return nil
}

func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*channel.NotificationChannel, error) {
	query := fmt.Sprintf("SELECT %s FROM notification_channels WHERE id = ?", channelColumns)

	c, err := scanChannel(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get notification channel", err)
	}
	return c, nil
}

func (r *ChannelRepository) Update(ctx context.Context, c *channel.NotificationChannel) error {
	query := `
		UPDATE notification_channels SET name = ?, config = ?, enabled = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, string(c.Config), boolToInt(c.Enabled),
		c.UpdatedAt.UTC().Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update notification channel", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Notification channel")
	}

	return nil
}

func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notification_channels WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete notification channel", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Notification channel")
	}

	return nil
}

func (r *ChannelRepository) List(ctx context.Context) ([]*channel.NotificationChannel, error) {
	query := fmt.Sprintf("SELECT %s FROM notification_channels ORDER BY created_at", channelColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list notification channels", err)
	}
	defer rows.Close()

	channels := make([]*channel.NotificationChannel, 0, 16)
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan notification channel", err)
		}
		channels = append(channels, c)
	}

	return channels, rows.Err()
}

func scanChannel(row rowScanner) (*channel.NotificationChannel, error) {
	var c channel.NotificationChannel
	var config string
	var enabled int
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.ChannelType, &config, &enabled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Config = json.RawMessage(config)
	c.Enabled = enabled != 0
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &c, nil
}
