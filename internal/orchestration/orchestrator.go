package orchestration

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/logging"
	"github.com/agbru/accai/internal/target"
)

// TracerName identifies the spans emitted by this package.
const TracerName = "github.com/agbru/accai/internal/orchestration"

// SubscriberBuffer is the capacity of channels returned by Subscribe. When a
// subscriber falls behind, its oldest pending snapshot is dropped so that the
// latest one is always delivered.
const SubscriberBuffer = 8

// Orchestrator owns the orchestration State and runs submissions.
type Orchestrator struct {
	registry  *target.Registry
	generator target.Generator
	timeout   time.Duration
	logger    logging.Logger
	metrics   MetricsRecorder
	tracer    trace.Tracer
	progress  chan<- ProgressUpdate
	now       func() time.Time
	newID     func() string

	mu          sync.RWMutex
	state       State
	observers   []StateObserver
	subscribers []chan State
}

// Option configures an Orchestrator during construction.
type Option func(*Orchestrator)

// WithGenerator sets the generator used for every target.
func WithGenerator(g target.Generator) Option {
	return func(o *Orchestrator) { o.generator = g }
}

// WithTimeout bounds each submission. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithTracerProvider sets the provider of the submission tracer. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(TracerName) }
}

// WithProgress sets a channel receiving one ProgressUpdate per finished
// target. Sends never block: updates are dropped when the channel is full.
func WithProgress(ch chan<- ProgressUpdate) Option {
	return func(o *Orchestrator) { o.progress = ch }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator replaces the submission ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

// New creates an orchestrator for the targets of registry. The initial state
// is Idle with one placeholder result per target.
//
// Parameters:
//   - registry: The ordered targets; results always follow this order.
//   - opts: Options replacing the defaults: a randomly seeded simulated
//     generator, no timeout, no-op logging and metrics, the global tracer.
//
// Returns:
//   - *Orchestrator: The orchestrator, ready to accept submissions.
func New(registry *target.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		logger:   logging.NewNopLogger(),
		metrics:  NullMetricsRecorder{},
		tracer:   otel.Tracer(TracerName),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.generator == nil {
		o.generator = target.NewSeededGenerator(0)
	}
	o.state = State{
		Status:  StatusIdle,
		Results: registry.Placeholders(),
	}
	return o
}

// Targets returns the configured targets in order.
func (o *Orchestrator) Targets() []target.ModelTarget {
	return o.registry.Targets()
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.clone()
}

// Observe registers an observer called on every state transition.
func (o *Orchestrator) Observe(obs StateObserver) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, obs)
}

// Subscribe returns a channel receiving every published state and a function
// that unregisters and closes it.
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, SubscriberBuffer)
	o.mu.Lock()
	o.subscribers = append(o.subscribers, ch)
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.subscribers = slices.DeleteFunc(o.subscribers, func(c chan State) bool { return c == ch })
			close(ch)
		})
	}
}

// Submit runs one submission: it publishes Running, generates a result for
// every target concurrently and commits them all at once. On success the
// returned state is Succeeded with every result replaced. On any fault it is
// Failed with the previous results untouched, and the error describes the
// fault: an apperrors.OrchestrationFault, an apperrors.TimeoutError when the
// configured timeout elapsed, or the context error when ctx ended.
//
// Submit does not reject overlapping calls.
//
// Parameters:
//   - ctx: Cancels the submission. The configured timeout applies on top.
//   - prompt: The prompt sent to every target. It is not validated and may
//     be empty.
//
// Returns:
//   - State: The final snapshot, also published to observers.
//   - error: nil on success, otherwise the reason the submission failed.
func (o *Orchestrator) Submit(ctx context.Context, prompt string) (State, error) {
	id := o.newID()
	start := o.now()
	targets := o.registry.Targets()

	ctx, span := o.tracer.Start(ctx, "orchestration.Submit", trace.WithAttributes(
		attribute.String("submission.id", id),
		attribute.Int("submission.targets", len(targets)),
		attribute.Int("submission.prompt_length", len(prompt)),
	))
	defer span.End()

	o.update(func(s *State) {
		s.Prompt = prompt
		s.Status = StatusRunning
		s.Message = ""
		s.Faults = nil
		s.SubmissionID = id
		s.StartedAt = start
		s.FinishedAt = time.Time{}
		s.Generation++
	})
	o.metrics.SubmissionStarted()
	o.logger.Info("submission started",
		logging.String("submission", id),
		logging.Int("targets", len(targets)),
	)

	results, faults, err := o.generateAll(ctx, targets, prompt)
	finished := o.now()
	elapsed := finished.Sub(start)

	if err != nil {
		message := apperrors.UserMessage(err)
		final := o.update(func(s *State) {
			s.Status = StatusFailed
			s.Message = message
			s.Faults = faults
			s.FinishedAt = finished
		})
		o.metrics.SubmissionFinished(StatusFailed, elapsed)
		o.logger.Error("submission failed", err,
			logging.String("submission", id),
			logging.Int("faults", len(faults)),
			logging.Float64("duration_seconds", elapsed.Seconds()),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, message)
		return final, err
	}

	final := o.update(func(s *State) {
		s.Status = StatusSucceeded
		s.Results = results
		s.FinishedAt = finished
	})
	o.metrics.SubmissionFinished(StatusSucceeded, elapsed)
	o.logger.Info("submission succeeded",
		logging.String("submission", id),
		logging.Float64("duration_seconds", elapsed.Seconds()),
	)
	span.SetStatus(codes.Ok, "")
	return final, nil
}

// generateAll runs one task per target and joins them. Results are returned
// only if every target succeeded.
func (o *Orchestrator) generateAll(parent context.Context, targets []target.ModelTarget, prompt string) ([]target.ModelResult, []apperrors.TargetFault, error) {
	ctx := parent
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, o.timeout)
		defer cancel()
	}

	results := make([]target.ModelResult, len(targets))
	errs := make([]error, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			res, err := o.generateOne(gctx, t, prompt)
			o.reportProgress(ProgressUpdate{TargetIndex: i, Target: t, Err: err})
			if err != nil {
				errs[i] = err
				return apperrors.TargetFault{Target: string(t), Err: err}
			}
			results[i] = res
			return nil
		})
	}
	firstErr := g.Wait()
	if firstErr == nil {
		return results, nil, nil
	}

	switch {
	case parent.Err() != nil:
		return nil, collectFaults(targets, errs, false), apperrors.WrapError(parent.Err(), "submission canceled")
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, collectFaults(targets, errs, false), apperrors.TimeoutError{Operation: "submit", Limit: o.timeout}
	default:
		faults := collectFaults(targets, errs, true)
		return nil, faults, apperrors.OrchestrationFault{Cause: firstErr, Faults: faults}
	}
}

// collectFaults lists failed targets in order. When skipCanceled is set,
// targets that only stopped because a sibling failed are left out.
func collectFaults(targets []target.ModelTarget, errs []error, skipCanceled bool) []apperrors.TargetFault {
	var faults []apperrors.TargetFault
	for i, err := range errs {
		if err == nil {
			continue
		}
		if skipCanceled && errors.Is(err, context.Canceled) {
			continue
		}
		faults = append(faults, apperrors.TargetFault{Target: string(targets[i]), Err: err})
	}
	return faults
}

// generateOne produces the result of one target. A panicking generator is
// recovered and reported as an error.
func (o *Orchestrator) generateOne(ctx context.Context, t target.ModelTarget, prompt string) (res target.ModelResult, err error) {
	ctx, span := o.tracer.Start(ctx, "orchestration.Generate", trace.WithAttributes(
		attribute.String("target", string(t)),
	))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
		o.metrics.TargetFinished(string(t), err == nil, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.logger.Debug("target failed", logging.String("target", string(t)), logging.Err(err))
		}
		span.End()
	}()

	res, err = o.generator.Generate(ctx, t, prompt)
	if err != nil {
		return target.ModelResult{}, err
	}
	res.Target = t
	res.Ready = true
	return res, nil
}

func (o *Orchestrator) reportProgress(u ProgressUpdate) {
	if o.progress == nil {
		return
	}
	select {
	case o.progress <- u:
	default:
	}
}

// update applies fn to the state under the write lock, then publishes the
// resulting snapshot.
func (o *Orchestrator) update(fn func(*State)) State {
	o.mu.Lock()
	fn(&o.state)
	snapshot := o.state.clone()
	observers := slices.Clone(o.observers)
	o.mu.Unlock()

	for _, obs := range observers {
		obs.OnStateChange(snapshot.clone())
	}

	o.mu.RLock()
	for _, ch := range o.subscribers {
		deliver(ch, snapshot.clone())
	}
	o.mu.RUnlock()
	return snapshot
}

// deliver sends s without blocking, dropping the oldest pending snapshot
// when ch is full.
func deliver(ch chan State, s State) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
