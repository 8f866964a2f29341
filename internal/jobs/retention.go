// Package jobs holds background work scheduled next to the HTTP server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"boardapi/internal/repository"
	"boardapi/internal/storage"
)

// runTimeout bounds a single purge run.
const runTimeout = 30 * time.Minute

// Report counts what one purge removed.
type Report struct {
	Objects  int   `json:"objects"`
	Tasks    int64 `json:"tasks"`
	Messages int64 `json:"messages"`
	Projects int64 `json:"projects"`
}

// Retention hard-deletes rows soft-deleted longer ago than the window,
// together with the stored objects of their attachments.
type Retention struct {
	repos  *repository.Store
	store  storage.Storage
	window time.Duration
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewRetention(repos *repository.Store, store storage.Storage, window time.Duration, log logrus.FieldLogger) *Retention {
	return &Retention{
		repos:  repos,
		store:  store,
		window: window,
		log:    log.WithField("component", "retention"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one purge. Objects go first: once the task rows are gone
// nothing records their keys any more. An object that cannot be removed is
// logged and left behind.
func (r *Retention) Run(ctx context.Context) (Report, error) {
	var rep Report
	cutoff := r.now().Add(-r.window)

	atts, err := r.repos.Attachments.ListPurgeable(ctx, cutoff)
	if err != nil {
		return rep, fmt.Errorf("list purgeable attachments: %w", err)
	}
	for _, a := range atts {
		if err := r.store.Delete(ctx, a.StoragePath); err != nil {
			r.log.WithError(err).WithFields(logrus.Fields{
				"event":         "retention_object_delete_failed",
				"attachment_id": a.ID,
				"key":           a.StoragePath,
			}).Warn("attachment object left behind")
			continue
		}
		rep.Objects++
	}

	if rep.Tasks, err = r.repos.Tasks.PurgeDeleted(ctx, cutoff); err != nil {
		return rep, fmt.Errorf("purge tasks: %w", err)
	}
	if rep.Messages, err = r.repos.Messages.PurgeDeleted(ctx, cutoff); err != nil {
		return rep, fmt.Errorf("purge messages: %w", err)
	}
	// Cascades to the columns, milestones, tasks and messages of the project.
	if rep.Projects, err = r.repos.Projects.PurgeDeleted(ctx, cutoff); err != nil {
		return rep, fmt.Errorf("purge projects: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"event":    "retention_purged",
		"cutoff":   cutoff.Format(time.RFC3339),
		"objects":  rep.Objects,
		"tasks":    rep.Tasks,
		"messages": rep.Messages,
		"projects": rep.Projects,
	}).Info("retention purge finished")
	return rep, nil
}

// Schedule starts a cron running r on schedule ("@daily", "0 3 * * *", ...).
// Overlapping runs are skipped. Stop the returned cron on shutdown.
func Schedule(r *Retention, schedule string) (*cron.Cron, error) {
	logger := cronLogger{log: r.log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			r.log.WithError(err).WithField("event", "retention_failed").Error("retention purge failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct {
	log logrus.FieldLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(kv []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}
