package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// outboxRelayer is implemented by commands.RelayOutboxCommandHandler.
type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the outbox to the message broker every second.
type OutboxRelayJob struct {
	handler   outboxRelayer
	batchSize int
	published prometheus.Counter
	failures  prometheus.Counter
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. Counters may be nil.
func NewOutboxRelayJob(
	handler outboxRelayer,
	batchSize int,
	published prometheus.Counter,
	failures prometheus.Counter,
	logger *slog.Logger,
) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = commands.DefaultOutboxBatchSize
	}

	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		published: published,
		failures:  failures,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)",
		"batch_size", j.batchSize)
	return nil
}

// RunOnce relays one batch and returns how many messages were published.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	published, err := j.handler.Handle(ctx, cmd)
	if published > 0 {
		if j.published != nil {
			j.published.Add(float64(published))
		}
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
	if err != nil {
		if j.failures != nil {
			j.failures.Inc()
		}
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", published)
	}

	return published
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
