package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deliveryapp/internal/pkg/discovery"

	"github.com/robfig/cron/v3"
)

// RegistryHeartbeatJob keeps a service instance registered in discovery.
// Registrations in the redis registry expire unless they are refreshed.
type RegistryHeartbeatJob struct {
	registry discovery.Registry
	instance discovery.Instance
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRegistryHeartbeatJob(
	registry discovery.Registry,
	instance discovery.Instance,
	interval time.Duration,
	logger *slog.Logger,
) *RegistryHeartbeatJob {
	return &RegistryHeartbeatJob{
		registry: registry,
		instance: instance,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "registry_heartbeat_job", "service", instance.Service),
	}
}

// Start registers the instance once and then refreshes the registration every interval.
// A failing first registration aborts the start.
func (j *RegistryHeartbeatJob) Start() error {
	if j.interval < time.Second {
		return fmt.Errorf("heartbeat interval %s is below one second", j.interval)
	}

	ctx := context.Background()
	if err := j.registry.Register(ctx, j.instance); err != nil {
		return fmt.Errorf("register %s: %w", j.instance.Service, err)
	}

	_, err := j.cron.AddFunc("@every "+j.interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.interval)
		defer cancel()

		if err := j.registry.Register(ctx, j.instance); err != nil {
			j.logger.WarnContext(ctx, "Registry heartbeat failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Registry heartbeat started",
		"instance", j.instance.ID, "url", j.instance.URL, "interval", j.interval.String())
	return nil
}

// Stop waits for a running heartbeat and removes the registration.
func (j *RegistryHeartbeatJob) Stop() {
	<-j.cron.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := j.registry.Deregister(ctx, j.instance); err != nil {
		j.logger.WarnContext(ctx, "Registry deregistration failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Registry heartbeat stopped")
}
