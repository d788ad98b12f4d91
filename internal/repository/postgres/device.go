package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/pkg/errors"
)

type DeviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) device.Repository {
	return &DeviceRepository{db: db}
}

const deviceColumns = `id, name, model, type, ip, site, state, version, uptime_s, last_seen, updated_at`

func (r *DeviceRepository) Upsert(ctx context.Context, d *device.Device) error {
	d.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO devices (id, name, model, type, ip, site, state, version, uptime_s, last_seen, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, model = excluded.model, type = excluded.type,
			ip = excluded.ip, site = excluded.site, state = excluded.state,
			version = excluded.version, uptime_s = excluded.uptime_s,
			last_seen = excluded.last_seen, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Model, d.Type, d.IP, d.Site, d.State, d.Version, d.UptimeS,
		nullableTime(d.LastSeen), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to upsert device", err)
	}
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*device.Device, error) {
	query := fmt.Sprintf("SELECT %s FROM devices WHERE id = ?", deviceColumns)

	d, err := scanDevice(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get device", err)
	}
	return d, nil
}

func (r *DeviceRepository) List(ctx context.Context) ([]*device.Device, error) {
	query := fmt.Sprintf("SELECT %s FROM devices ORDER BY name, id", deviceColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list devices", err)
	}
	defer rows.Close()

	devices := make([]*device.Device, 0, 32)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan device", err)
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

func scanDevice(row rowScanner) (*device.Device, error) {
	var d device.Device
	var lastSeen sql.NullString
	var updatedAt string

	err := row.Scan(&d.ID, &d.Name, &d.Model, &d.Type, &d.IP, &d.Site, &d.State,
		&d.Version, &d.UptimeS, &lastSeen, &updatedAt)
	if err != nil {
		return nil, err
	}

	d.LastSeen = parseNullableTime(lastSeen)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &d, nil
}
