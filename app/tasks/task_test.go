package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeRefreshSchedule)

	if task.ID == "" {
		t.Error("Expected a non-empty task ID")
	}
	if task.Type != TaskTypeRefreshSchedule {
		t.Errorf("Expected type %q, got %q", TaskTypeRefreshSchedule, task.Type)
	}
	if task.RetryCount != 0 {
		t.Errorf("Expected retry count 0, got %d", task.RetryCount)
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestTaskIDsAreUnique(t *testing.T) {
	a := NewTask(TaskTypeReloadPresets)
	b := NewTask(TaskTypeReloadPresets)

	if a.ID == b.ID {
		t.Errorf("Expected distinct task IDs, both were %q", a.ID)
	}
}

func TestTaskRetryLogic(t *testing.T) {
	task := NewTask(TaskTypeReloadPresets)

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected task to be retryable at count %d", task.RetryCount)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Errorf("Expected task to be exhausted after %d retries", task.RetryCount)
	}
}

func TestTaskWithoutRetries(t *testing.T) {
	task := NewTask(TaskTypeRefreshSchedule)
	task.MaxRetries = 0

	if task.CanRetry() {
		t.Error("Expected a zero-retry task to never retry")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeRefreshSchedule)

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before start, got %v", task.GetDuration())
	}

	task.Start()
	time.Sleep(time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Errorf("Expected positive duration after start, got %v", task.GetDuration())
	}
}
