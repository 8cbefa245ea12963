package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kittipatv/yt-sched/app/cfg"
	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/presets"
	"github.com/kittipatv/yt-sched/app/schedule"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	settingsRepo database.SettingsRepository
	store        *schedule.ResultStore
	presetCache  *presets.Cache
	httpClient   *http.Client
	limiter      *rate.Limiter
	userAgent    string
	interval     time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	taskQueue    chan TaskInterface
}

func NewScheduler(settingsRepo database.SettingsRepository, store *schedule.ResultStore,
	presetCache *presets.Cache, httpClient *http.Client, limiter *rate.Limiter) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		settingsRepo: settingsRepo,
		store:        store,
		presetCache:  presetCache,
		httpClient:   httpClient,
		limiter:      limiter,
		userAgent:    cfg.UserAgent,
		interval:     time.Duration(cfg.RefreshInterval) * time.Second,
		workerCount:  cfg.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 50),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// Warm start: one refresh right away instead of waiting a full
		// interval for the first schedule to appear.
		if err := s.EnqueueRefresh(); err != nil {
			slog.Warn("Failed to enqueue startup refresh", "error", err)
		}

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := s.EnqueueRefresh(); err != nil {
					slog.Warn("Failed to enqueue periodic refresh", "error", err)
				}
			}
		}
	}()
}

// Stop tears down the ticker and workers. In-flight tasks run to
// completion; a stale cycle finishing afterwards is discarded by the
// result store's sequence guard.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueRefresh schedules one full fetch cycle. Used by the periodic
// ticker and by the manual refresh endpoint; an already-running cycle is
// not cancelled.
func (s *Scheduler) EnqueueRefresh() error {
	task := NewRefreshScheduleTask(s.settingsRepo, s.store, s.httpClient, s.limiter, s.userAgent)
	return s.EnqueueTask(task)
}

func (s *Scheduler) EnqueueReloadPresets() error {
	return s.EnqueueTask(NewReloadPresetsTask(s.presetCache))
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed without retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
