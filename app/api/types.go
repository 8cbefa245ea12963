package api

import (
	"context"

	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/presets"
	"github.com/kittipatv/yt-sched/app/schedule"
	"github.com/kittipatv/yt-sched/app/tasks"
	"github.com/kittipatv/yt-sched/app/youtube"
)

// HandleResolver resolves an @handle into a channel ID using the API key
// current at request time.
type HandleResolver interface {
	ResolveHandle(ctx context.Context, apiKey string, handle string) (string, error)
}

var _ HandleResolver = (*youtube.Resolver)(nil)

type Handler struct {
	settingsRepo database.SettingsRepository
	store        *schedule.ResultStore
	presetCache  *presets.Cache
	scheduler    tasks.TaskSchedulerInterface
	resolver     HandleResolver
}
