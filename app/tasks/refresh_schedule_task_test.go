package tasks

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/kittipatv/yt-sched/app/schedule"
	"github.com/kittipatv/yt-sched/app/settings"
)

type fakeSettingsRepo struct {
	values map[string]string
	fail   bool
}

func (r *fakeSettingsRepo) Get(key string) (string, bool, error) {
	if r.fail {
		return "", false, fmt.Errorf("database unavailable")
	}
	value, ok := r.values[key]
	return value, ok, nil
}

func (r *fakeSettingsRepo) GetAll() (map[string]string, error) {
	if r.fail {
		return nil, fmt.Errorf("database unavailable")
	}
	return r.values, nil
}

func (r *fakeSettingsRepo) Set(key string, value string) error { return nil }
func (r *fakeSettingsRepo) Delete(key string) error            { return nil }

func TestRefreshPublishesIdleWhenUnconfigured(t *testing.T) {
	repo := &fakeSettingsRepo{values: map[string]string{}}
	store := schedule.NewResultStore()

	task := NewRefreshScheduleTask(repo, store, http.DefaultClient, nil, "test-agent/1.0")
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result := store.Latest()
	if result.State != schedule.StateIdle {
		t.Errorf("Expected state idle, got %q", result.State)
	}
	if result.Timezone != settings.DefaultTimezone {
		t.Errorf("Expected default timezone, got %q", result.Timezone)
	}
	if result.RefreshedAt.IsZero() {
		t.Error("Expected a refresh timestamp even for an idle cycle")
	}
}

func TestRefreshIdleWithChannelsButNoKey(t *testing.T) {
	repo := &fakeSettingsRepo{values: map[string]string{
		settings.KeyChannelIDs: "UCaaa UCbbb",
	}}
	store := schedule.NewResultStore()

	task := NewRefreshScheduleTask(repo, store, http.DefaultClient, nil, "test-agent/1.0")
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if store.Latest().State != schedule.StateIdle {
		t.Errorf("Expected state idle without an API key, got %q", store.Latest().State)
	}
}

func TestRefreshFailsOnSettingsError(t *testing.T) {
	repo := &fakeSettingsRepo{fail: true}
	store := schedule.NewResultStore()

	task := NewRefreshScheduleTask(repo, store, http.DefaultClient, nil, "test-agent/1.0")
	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected an error when the settings store is unavailable")
	}
}

func TestRefreshHonorsCancelledContext(t *testing.T) {
	repo := &fakeSettingsRepo{values: map[string]string{}}
	store := schedule.NewResultStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewRefreshScheduleTask(repo, store, http.DefaultClient, nil, "test-agent/1.0")
	if err := task.Execute(ctx); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestRefreshTaskNeverRetries(t *testing.T) {
	task := NewRefreshScheduleTask(&fakeSettingsRepo{}, schedule.NewResultStore(), http.DefaultClient, nil, "test-agent/1.0")
	if task.CanRetry() {
		t.Error("Expected the refresh task to never retry")
	}
}

func TestReloadPresetsTaskRetries(t *testing.T) {
	task := NewReloadPresetsTask(nil)
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}
