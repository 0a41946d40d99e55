package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	entry *logrus.Entry
}

// NewLogUseCaseObserver reports service use-case events through entry.
func NewLogUseCaseObserver(entry *logrus.Entry) UseCaseObserver {
	if entry == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{entry: entry}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	fields := make(logrus.Fields, 3+len(event.Fields))
	for k, v := range event.Fields {
		fields[k] = v
	}
	fields["use_case"] = event.Name
	fields["duration_ms"] = event.Duration.Milliseconds()
	fields["success"] = event.Success

	entry := o.entry.WithContext(ctx).WithFields(fields)
	if event.Err != nil {
		entry.WithError(event.Err).Error("service_use_case")
		return
	}
	entry.Info("service_use_case")
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe emits one event for a use case when the deferred func runs.
// Callers use it as `defer observe(ctx, s.observer, "name", time.Now(), fields, &err)`.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
