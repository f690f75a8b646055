// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and publishes pending outbox messages
// through RelayOutboxCommandHandler. Overlapping runs are skipped.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(handler, 100, m.OutboxPublished, m.OutboxFailures, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
