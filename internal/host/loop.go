package host

// Loop bundles the frame scheduler and event bus every platform host
// exposes to renderers. It is not safe for concurrent use; hosts drive it
// from their single render goroutine.
type Loop struct {
	*Scheduler
	*EventBus
}

func NewLoop() *Loop {
	return &Loop{
		Scheduler: NewScheduler(),
		EventBus:  NewEventBus(),
	}
}
