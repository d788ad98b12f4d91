// Package collector polls the UniFi controller on a schedule, persists
// device inventory and metric samples, and hands freshly triggered
// alerts to the notification fan-out.
package collector

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/engine"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/metrics"
	"github.com/netpulse/netpulse/internal/services"
	"github.com/netpulse/netpulse/internal/unifi"
)

// Poller drives the collect/evaluate/notify loop
type Poller struct {
	cfg           config.EngineConfig
	controller    *unifi.Client
	devices       device.Repository
	samples       metric.Repository
	rules         rule.Repository
	alertEngine   *engine.Engine
	notifications *services.NotificationService
	retention     *Retention
	logger        *logger.Logger

	scheduler *cron.Cron
}

// New creates a poller. retention may be nil to disable cleanup.
func New(
	cfg config.EngineConfig,
	controller *unifi.Client,
	devices device.Repository,
	samples metric.Repository,
	rules rule.Repository,
	alertEngine *engine.Engine,
	notifications *services.NotificationService,
	retention *Retention,
	log *logger.Logger,
) *Poller {
	return &Poller{
		cfg:           cfg,
		controller:    controller,
		devices:       devices,
		samples:       samples,
		rules:         rules,
		alertEngine:   alertEngine,
		notifications: notifications,
		retention:     retention,
		logger:        log,
		scheduler:     cron.New(),
	}
}

// Start schedules the poll and cleanup jobs and starts the scheduler
func (p *Poller) Start() error {
	if _, err := cron.ParseStandard(p.cfg.PollSchedule); err != nil {
		return err
	}

	if _, err := p.scheduler.AddFunc(p.cfg.PollSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := p.RunOnce(ctx); err != nil {
			p.logger.ErrorWithErr(err, "Poll cycle failed")
		}
	}); err != nil {
		return err
	}

	if p.retention != nil && p.cfg.CleanupSchedule != "" {
		if _, err := p.scheduler.AddFunc(p.cfg.CleanupSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := p.retention.RunOnce(ctx); err != nil {
				p.logger.ErrorWithErr(err, "Retention cleanup failed")
			}
		}); err != nil {
			return err
		}
	}

	p.scheduler.Start()
	p.logger.WithFields(map[string]interface{}{
		"poll_schedule": p.cfg.PollSchedule,
	}).Info("Poller started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (p *Poller) Stop() {
	ctx := p.scheduler.Stop()
	<-ctx.Done()
	p.logger.Info("Poller stopped")
}

// RunOnce performs a single collect/evaluate/notify cycle
func (p *Poller) RunOnce(ctx context.Context) error {
	start := time.Now()

	devices, err := p.controller.GetDevices(ctx)
	if err != nil {
		metrics.RecordPollCycle("error", time.Since(start))
		return err
	}

	clients, err := p.controller.GetClients(ctx)
	if err != nil {
		// Device telemetry is still worth recording when the client
		// listing fails.
		p.logger.ErrorWithErr(err, "Failed to list controller clients")
		clients = nil
	}

	now := time.Now().UTC()
	samples := make([]*metric.Metric, 0, len(devices)*6)

	for i := range devices {
		d := &devices[i]
		if err := p.upsertDevice(ctx, d, now); err != nil {
			p.logger.WithError(err).WithFields(map[string]interface{}{
				"device": d.MAC,
			}).Error("Failed to upsert device")
		}
		samples = append(samples, deviceSamples(d, clientCount(clients, d.MAC), now)...)
	}

	if err := p.samples.InsertBatch(ctx, samples); err != nil {
		metrics.RecordPollCycle("error", time.Since(start))
		return err
	}

	metrics.SetMonitoredHosts(float64(len(devices)))

	fired := 0
	if p.cfg.EvaluateOnPoll && p.alertEngine != nil {
		alerts, err := p.alertEngine.EvaluateAllRules(ctx)
		if err != nil {
			metrics.RecordPollCycle("error", time.Since(start))
			return err
		}
		fired = len(alerts)

		for _, a := range alerts {
			r, err := p.rules.GetByID(ctx, a.AlertRuleID)
			if err != nil || r == nil {
				p.logger.WithFields(map[string]interface{}{
					"rule_id":  a.AlertRuleID,
					"alert_id": a.ID,
				}).Error("Failed to load rule for fired alert")
				continue
			}
			p.notifications.SendAlert(ctx, r, a)
		}
	}

	p.logger.WithFields(map[string]interface{}{
		"devices":  len(devices),
		"samples":  len(samples),
		"alerts":   fired,
		"duration": time.Since(start).String(),
	}).Info("Poll cycle complete")

	metrics.RecordPollCycle("success", time.Since(start))
	return nil
}

func (p *Poller) upsertDevice(ctx context.Context, d *unifi.Device, now time.Time) error {
	lastSeen := now
	return p.devices.Upsert(ctx, &device.Device{
		ID:       d.MAC,
		Name:     deviceName(d),
		Model:    d.Model,
		Type:     d.Type,
		IP:       d.IP,
		Site:     "",
		State:    d.StateName(),
		Version:  d.Version,
		UptimeS:  d.Uptime,
		LastSeen: &lastSeen,
	})
}

// deviceSamples maps one controller device row to metric samples.
// Controller system stats arrive as strings; unparseable values are
// skipped rather than recorded as zero.
func deviceSamples(d *unifi.Device, clients int, now time.Time) []*metric.Metric {
	samples := make([]*metric.Metric, 0, 7)

	add := func(name string, value float64, unit string) {
		samples = append(samples, &metric.Metric{
			HostID:     d.MAC,
			MetricName: name,
			Value:      value,
			Unit:       unit,
			RecordedAt: now,
		})
	}

	if v, err := strconv.ParseFloat(d.SystemStats.CPU, 64); err == nil {
		add(metric.NameCPUPercent, v, "%")
	}
	if v, err := strconv.ParseFloat(d.SystemStats.Mem, 64); err == nil {
		add(metric.NameMemPercent, v, "%")
	}
	if d.HasTemperature {
		add(metric.NameTemperatureC, d.GeneralTemperature, "C")
	}

	add(metric.NameUptimeS, float64(d.Uptime), "s")
	add(metric.NameClientCount, float64(clients), "")
	add(metric.NameTxRateBps, float64(d.Uplink.TxBytesR), "B/s")
	add(metric.NameRxRateBps, float64(d.Uplink.RxBytesR), "B/s")

	return samples
}

func deviceName(d *unifi.Device) string {
	if d.Name != "" {
		return d.Name
	}
	return d.MAC
}

func clientCount(clients []unifi.WiredClient, deviceMAC string) int {
	n := 0
	for _, c := range clients {
		if c.ApMAC == deviceMAC || c.SwMAC == deviceMAC {
			n++
		}
	}
	return n
}
