package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/domain/user"
)

// MockRuleRepository is an in-memory implementation of rule.Repository
type MockRuleRepository struct {
	Rules       map[int64]*rule.AlertRule
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{
		Rules:  make(map[int64]*rule.AlertRule),
		NextID: 1,
	}
}

func (m *MockRuleRepository) Create(ctx context.Context, r *rule.AlertRule) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	r.ID = m.NextID
	m.NextID++
	m.Rules[r.ID] = r
	return r.ID, nil
}

func (m *MockRuleRepository) GetByID(ctx context.Context, id int64) (*rule.AlertRule, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Rules[id], nil
}

func (m *MockRuleRepository) Update(ctx context.Context, r *rule.AlertRule) error {
	m.Rules[r.ID] = r
	return nil
}

func (m *MockRuleRepository) Delete(ctx context.Context, id int64) error {
	delete(m.Rules, id)
	return nil
}

func (m *MockRuleRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.AlertRule, error) {
	var result []*rule.AlertRule
	for _, r := range m.sorted() {
		if filter.RuleType != "" && r.RuleType != filter.RuleType {
			continue
		}
		if filter.MetricName != "" && r.MetricName != filter.MetricName {
			continue
		}
		if filter.Severity != "" && r.Severity != filter.Severity {
			continue
		}
		if filter.HostID != "" && r.HostID != filter.HostID {
			continue
		}
		if filter.Enabled != nil && r.Enabled != *filter.Enabled {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRuleRepository) ListEnabled(ctx context.Context) ([]*rule.AlertRule, error) {
	var result []*rule.AlertRule
	for _, r := range m.sorted() {
		if r.Enabled {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *MockRuleRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	if r, ok := m.Rules[id]; ok {
		r.Enabled = enabled
	}
	return nil
}

func (m *MockRuleRepository) sorted() []*rule.AlertRule {
	ids := make([]int64, 0, len(m.Rules))
	for id := range m.Rules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]*rule.AlertRule, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.Rules[id])
	}
	return result
}

// MockAlertRepository is an in-memory implementation of alert.Repository
type MockAlertRepository struct {
	Alerts      map[int64]*alert.Alert
	NextID      int64
	CreateError error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		Alerts: make(map[int64]*alert.Alert),
		NextID: 1,
	}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	a.ID = m.NextID
	m.NextID++
	m.Alerts[a.ID] = a
	return a.ID, nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	return m.Alerts[id], nil
}

func (m *MockAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	m.Alerts[a.ID] = a
	return nil
}

func (m *MockAlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	var matched []*alert.Alert
	for _, a := range m.Alerts {
		if filter.AlertRuleID != 0 && a.AlertRuleID != filter.AlertRuleID {
			continue
		}
		if filter.HostID != "" && a.HostID != filter.HostID {
			continue
		}
		if filter.MetricName != "" && a.MetricName != filter.MetricName {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.ActiveOnly && !a.IsActive() {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].TriggeredAt.Equal(matched[j].TriggeredAt) {
			return matched[i].TriggeredAt.After(matched[j].TriggeredAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *MockAlertRepository) LatestForRuleHost(ctx context.Context, ruleID int64, hostID string) (*alert.Alert, error) {
	var latest *alert.Alert
	for _, a := range m.Alerts {
		if a.AlertRuleID != ruleID || a.HostID != hostID {
			continue
		}
		if latest == nil || a.TriggeredAt.After(latest.TriggeredAt) {
			latest = a
		}
	}
	return latest, nil
}

func (m *MockAlertRepository) CountActiveBySeverity(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.Alerts {
		if a.IsActive() {
			counts[a.Severity]++
		}
	}
	return counts, nil
}

func (m *MockAlertRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, a := range m.Alerts {
		if a.ResolvedAt != nil && a.ResolvedAt.Before(cutoff) {
			delete(m.Alerts, id)
			removed++
		}
	}
	return removed, nil
}

// MockMuteRepository is an in-memory implementation of mute.Repository
type MockMuteRepository struct {
	Mutes map[string]*mute.AlertMute
}

func NewMockMuteRepository() *MockMuteRepository {
	return &MockMuteRepository{Mutes: make(map[string]*mute.AlertMute)}
}

func (m *MockMuteRepository) Create(ctx context.Context, mt *mute.AlertMute) error {
	m.Mutes[mt.ID] = mt
	return nil
}

func (m *MockMuteRepository) GetByID(ctx context.Context, id string) (*mute.AlertMute, error) {
	return m.Mutes[id], nil
}

func (m *MockMuteRepository) Delete(ctx context.Context, id string) error {
	delete(m.Mutes, id)
	return nil
}

func (m *MockMuteRepository) List(ctx context.Context) ([]*mute.AlertMute, error) {
	var result []*mute.AlertMute
	for _, mt := range m.Mutes {
		result = append(result, mt)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockMuteRepository) ListForRule(ctx context.Context, ruleID int64) ([]*mute.AlertMute, error) {
	var result []*mute.AlertMute
	for _, mt := range m.Mutes {
		if mt.AlertRuleID == ruleID {
			result = append(result, mt)
		}
	}
	return result, nil
}

func (m *MockMuteRepository) ActiveForRuleHost(ctx context.Context, ruleID int64, hostID string, at time.Time) (*mute.AlertMute, error) {
	for _, mt := range m.Mutes {
		if mt.AlertRuleID == ruleID && mt.Covers(hostID) && mt.ActiveAt(at) {
			return mt, nil
		}
	}
	return nil, nil
}

// MockChannelRepository is an in-memory implementation of channel.Repository
type MockChannelRepository struct {
	Channels map[string]*channel.NotificationChannel
	GetError error
}

func NewMockChannelRepository() *MockChannelRepository {
	return &MockChannelRepository{Channels: make(map[string]*channel.NotificationChannel)}
}

func (m *MockChannelRepository) Create(ctx context.Context, c *channel.NotificationChannel) error {
	m.Channels[c.ID] = c
	return nil
}

func (m *MockChannelRepository) GetByID(ctx context.Context, id string) (*channel.NotificationChannel, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Channels[id], nil
}

func (m *MockChannelRepository) Update(ctx context.Context, c *channel.NotificationChannel) error {
	m.Channels[c.ID] = c
	return nil
}

func (m *MockChannelRepository) Delete(ctx context.Context, id string) error {
	delete(m.Channels, id)
	return nil
}

func (m *MockChannelRepository) List(ctx context.Context) ([]*channel.NotificationChannel, error) {
	var result []*channel.NotificationChannel
	for _, c := range m.Channels {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockMetricRepository is an in-memory implementation of metric.Repository
type MockMetricRepository struct {
	Samples     []*metric.Metric
	nextID      int64
	InsertError error
}

func NewMockMetricRepository() *MockMetricRepository {
	return &MockMetricRepository{}
}

// Seed appends a sample without going through Insert error injection
func (m *MockMetricRepository) Seed(hostID, name string, value float64, at time.Time) {
	m.nextID++
	m.Samples = append(m.Samples, &metric.Metric{
		ID:         m.nextID,
		HostID:     hostID,
		MetricName: name,
		Value:      value,
		RecordedAt: at,
	})
}

func (m *MockMetricRepository) Insert(ctx context.Context, sample *metric.Metric) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	sample.ID = m.nextID
	m.Samples = append(m.Samples, sample)
	return nil
}

func (m *MockMetricRepository) InsertBatch(ctx context.Context, samples []*metric.Metric) error {
	for _, s := range samples {
		if err := m.Insert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockMetricRepository) GetLatest(ctx context.Context, hostID string) ([]*metric.Metric, error) {
	latest := make(map[string]*metric.Metric)
	for _, s := range m.Samples {
		if s.HostID != hostID {
			continue
		}
		cur, ok := latest[s.MetricName]
		if !ok || s.RecordedAt.After(cur.RecordedAt) {
			latest[s.MetricName] = s
		}
	}
	names := make([]string, 0, len(latest))
	for name := range latest {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]*metric.Metric, 0, len(names))
	for _, name := range names {
		result = append(result, latest[name])
	}
	return result, nil
}

func (m *MockMetricRepository) LatestFor(ctx context.Context, hostID, metricName string) (*metric.Metric, error) {
	var latest *metric.Metric
	for _, s := range m.Samples {
		if s.HostID != hostID || s.MetricName != metricName {
			continue
		}
		if latest == nil || s.RecordedAt.After(latest.RecordedAt) {
			latest = s
		}
	}
	return latest, nil
}

func (m *MockMetricRepository) GetByTimeRange(ctx context.Context, hostID, metricName string, start, end time.Time) ([]*metric.Metric, error) {
	var result []*metric.Metric
	for _, s := range m.Samples {
		if s.HostID != hostID || s.MetricName != metricName {
			continue
		}
		if s.RecordedAt.Before(start) || s.RecordedAt.After(end) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].RecordedAt.Before(result[j].RecordedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockMetricRepository) HostsReporting(ctx context.Context, metricName string) ([]string, error) {
	seen := make(map[string]bool)
	for _, s := range m.Samples {
		if s.MetricName == metricName {
			seen[s.HostID] = true
		}
	}
	hosts := make([]string, 0, len(seen))
	for h := range seen {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts, nil
}

func (m *MockMetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*metric.Metric
	var removed int64
	for _, s := range m.Samples {
		if s.RecordedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.Samples = kept
	return removed, nil
}

// MockDeviceRepository is an in-memory implementation of device.Repository
type MockDeviceRepository struct {
	Devices map[string]*device.Device
}

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{Devices: make(map[string]*device.Device)}
}

func (m *MockDeviceRepository) Upsert(ctx context.Context, d *device.Device) error {
	m.Devices[d.ID] = d
	return nil
}

func (m *MockDeviceRepository) GetByID(ctx context.Context, id string) (*device.Device, error) {
	return m.Devices[id], nil
}

func (m *MockDeviceRepository) List(ctx context.Context) ([]*device.Device, error) {
	var result []*device.Device
	for _, d := range m.Devices {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockUserRepository is an in-memory implementation of user.Repository
type MockUserRepository struct {
	Users      map[int64]*user.User
	EmailIndex map[string]*user.User
	NextID     int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return u.ID, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.EmailIndex[email], nil
}
