package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kittipatv/yt-sched/app/presets"
)

// ReloadPresetsTask re-reads the preset files from disk so edits show up
// without a restart.
type ReloadPresetsTask struct {
	Task
	cache *presets.Cache
}

func NewReloadPresetsTask(cache *presets.Cache) *ReloadPresetsTask {
	return &ReloadPresetsTask{
		Task:  NewTask(TaskTypeReloadPresets),
		cache: cache,
	}
}

func (t *ReloadPresetsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.cache.Run(); err != nil {
		return fmt.Errorf("failed to reload presets: %w", err)
	}

	slog.Info("Task completed",
		"type", "ReloadPresets",
		"duration", t.GetDuration(),
		"presets", t.cache.Count())

	return nil
}
