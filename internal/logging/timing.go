package logging

import (
	"time"
)

// TimingContext holds the start of a measurement begun with Start
type TimingContext struct {
	name  string
	start time.Time
}

// Start begins a timing measurement. Pair it with End or EndWithCount.
//
//	timing := logging.Start("fetch tasks web")
//	tasks, err := ecs.ServiceTasks(ctx, api, svc)
//	logging.EndWithCount(timing, len(tasks))
func Start(name string) TimingContext {
	return TimingContext{name: name, start: time.Now()}
}

// Elapsed returns the time since Start
func (t TimingContext) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the duration of a measurement at debug level
func End(t TimingContext) {
	if !IsEnabled() {
		return
	}
	d := t.Elapsed()
	Get().Debug(t.name, "duration", d.String(), "ms", d.Milliseconds())
}

// EndWithCount is End with the number of items the operation produced
func EndWithCount(t TimingContext, count int) {
	if !IsEnabled() {
		return
	}
	d := t.Elapsed()
	Get().Debug(t.name, "duration", d.String(), "ms", d.Milliseconds(), "count", count)
}
