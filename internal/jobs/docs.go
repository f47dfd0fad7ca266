// Package jobs provides scheduled background tasks for the services.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and are driven through JobManager:
//
//	jobManager := jobs.NewJobManager().
//		Add("registry heartbeat", jobs.NewRegistryHeartbeatJob(registry, instance, 10*time.Second, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// RegistryHeartbeatJob registers the service instance on start, refreshes the
// registration every interval so that it outlives the registry TTL, and deregisters it
// on stop. Heartbeat failures are logged and retried on the next tick.
package jobs
