package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/time/rate"

	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/metrics"
	"github.com/kittipatv/yt-sched/app/schedule"
	"github.com/kittipatv/yt-sched/app/settings"
	"github.com/kittipatv/yt-sched/app/youtube"
)

// RefreshScheduleTask runs one full fetch cycle: load the settings
// snapshot, fan out across channels, filter, group and publish. The task
// never retries; a failed cycle simply waits for the next tick.
type RefreshScheduleTask struct {
	Task
	settingsRepo database.SettingsRepository
	store        *schedule.ResultStore
	httpClient   *http.Client
	limiter      *rate.Limiter
	userAgent    string
}

func NewRefreshScheduleTask(settingsRepo database.SettingsRepository, store *schedule.ResultStore,
	httpClient *http.Client, limiter *rate.Limiter, userAgent string) *RefreshScheduleTask {
	task := NewTask(TaskTypeRefreshSchedule)
	task.MaxRetries = 0

	return &RefreshScheduleTask{
		Task:         task,
		settingsRepo: settingsRepo,
		store:        store,
		httpClient:   httpClient,
		limiter:      limiter,
		userAgent:    userAgent,
	}
}

func (t *RefreshScheduleTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	current, err := settings.Load(t.settingsRepo)
	if err != nil {
		metrics.CyclesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	seq := t.store.StartCycle()

	if !current.Configured() {
		t.store.Publish(seq, schedule.Result{
			State:       schedule.StateIdle,
			Timezone:    current.Timezone,
			RefreshedAt: time.Now().UTC(),
		})
		metrics.CyclesTotal.WithLabelValues("idle").Inc()
		slog.Debug("Fetch skipped, configuration missing", "channels", len(current.Channels), "has_api_key", current.APIKey != "")
		return nil
	}

	client := youtube.NewClient(t.httpClient, t.limiter, current.APIKey, t.userAgent)

	var finder schedule.VideoFinder = client
	if current.RSSDiscovery {
		finder = youtube.NewRSSClient(t.httpClient, t.userAgent)
	}

	fetcher := schedule.NewFetcher(finder, client)
	entries, channelErrs := fetcher.Run(ctx, current.Channels)

	now := time.Now().UTC()
	filtered := schedule.NewFilterer().Run(entries, now, current.LookAheadHours)
	days := schedule.GroupByDay(filtered, current.Location)

	applied := t.store.Publish(seq, schedule.Result{
		State:       schedule.StateOK,
		Entries:     filtered,
		Days:        days,
		Errors:      channelErrs,
		Timezone:    current.Timezone,
		RefreshedAt: now,
	})

	metrics.CyclesTotal.WithLabelValues("ok").Inc()
	metrics.CycleDuration.Observe(t.GetDuration().Seconds())
	if applied {
		metrics.VisibleEntries.Set(float64(len(filtered)))
	}

	if len(channelErrs) > 0 {
		metrics.ChannelErrorsTotal.Add(float64(len(channelErrs)))

		var merged *multierror.Error
		for _, channelErr := range channelErrs {
			merged = multierror.Append(merged, channelErr)
		}
		slog.Warn("Some channels failed this cycle", "failed", len(channelErrs), "error", merged)
	}

	slog.Info("Task completed",
		"type", "RefreshSchedule",
		"duration", t.GetDuration(),
		"channels", len(current.Channels),
		"fetched", len(entries),
		"visible", len(filtered),
		"days", len(days),
		"failed", len(channelErrs),
		"applied", applied)

	return nil
}
