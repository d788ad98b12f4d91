package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/testutil"
)

func TestDeviceRepository_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	seen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := &device.Device{
		ID:       "aa:bb:cc:dd:ee:ff",
		Name:     "Office Gateway",
		Model:    "UDM-Pro",
		Type:     "gateway",
		IP:       "192.168.1.1",
		Site:     "default",
		State:    device.StateConnected,
		Version:  "4.0.6",
		UptimeS:  86400,
		LastSeen: &seen,
	}
	if err := repo.Upsert(ctx, d); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil for an existing device")
	}
	if got.Name != "Office Gateway" || got.State != device.StateConnected || got.UptimeS != 86400 {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.LastSeen == nil || !got.LastSeen.Equal(seen) {
		t.Errorf("LastSeen = %v, want %v", got.LastSeen, seen)
	}

	// A second upsert for the same id updates in place.
	d.State = device.StateDisconnected
	d.UptimeS = 0
	if err := repo.Upsert(ctx, d); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err = repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.State != device.StateDisconnected || got.UptimeS != 0 {
		t.Errorf("after upsert = %+v, want disconnected with zero uptime", got)
	}

	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("List() = %d devices, want 1 after repeated upserts", len(devices))
	}
}

func TestDeviceRepository_GetByIDMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeviceRepository(db)

	got, err := repo.GetByID(context.Background(), "00:00:00:00:00:00")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID(missing) = %+v, want nil", got)
	}
}

func TestDeviceRepository_ListOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	for _, d := range []*device.Device{
		{ID: "cc:cc", Name: "Switch Rack B"},
		{ID: "aa:aa", Name: "AP Lobby"},
		{ID: "bb:bb", Name: "Gateway"},
	} {
		if err := repo.Upsert(ctx, d); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() = %d devices, want 3", len(got))
	}
	if got[0].Name != "AP Lobby" || got[2].Name != "Switch Rack B" {
		t.Errorf("List() not ordered by name: %q, %q, %q", got[0].Name, got[1].Name, got[2].Name)
	}
}
