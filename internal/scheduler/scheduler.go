// Package scheduler runs the recurring background jobs: currently the daily
// ISP-FR index snapshot.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	cron         *cron.Cron
	indexService *service.IndexService
}

// New creates a Scheduler with seconds-resolution cron expressions.
func New(indexService *service.IndexService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		indexService: indexService,
	}
}

// Register adds the daily index snapshot job under the given cron spec.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register index snapshot task: %w", err)
	}
	return nil
}

// Start begins running registered tasks in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler, waiting for a running task to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) snapshotTask() {
	snap, err := s.indexService.SnapshotLatest(time.Now())
	if err != nil {
		log.Printf("index snapshot failed: %v", err)
		return
	}
	if snap != nil {
		log.Printf("index snapshot recorded: %s value=%.2f items=%d",
			snap.Date.Format("2006-01-02"), snap.Value, snap.ItemCount)
	}
}
