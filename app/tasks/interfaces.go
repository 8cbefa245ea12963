package tasks

// TaskSchedulerInterface is what the HTTP layer sees of the background
// scheduler: lifecycle control plus enqueueing of the two task kinds it can
// trigger on demand.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueRefresh() error
	EnqueueReloadPresets() error
}
