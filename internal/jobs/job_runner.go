package jobs

import (
	"reelstudio-backend/internal/config"
	"reelstudio-backend/internal/logger"
	"reelstudio-backend/internal/repository/postgres"
	"reelstudio-backend/internal/service"
)

// JobRunner coordinates the scheduled reminder jobs. Jobs only send
// reminders and notifications; proposal expiry stays a display-time
// check and is never flipped by a job.
type JobRunner struct {
	store  *postgres.Store
	email  service.EmailService
	config *config.Config
}

func NewJobRunner(store *postgres.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		email:  email,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs every daily job once (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendOverdueReminders()
	jr.SendExpiryNotifications()
}
