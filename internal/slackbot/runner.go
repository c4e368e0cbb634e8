package slackbot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"basegraph.app/huddle/common/logger"
)

// Runner executes work that must not delay the Slack acknowledgement.
type Runner interface {
	Go(ctx context.Context, job string, fn func(ctx context.Context))
}

// GoRunner runs each job on its own goroutine, detached from the request
// context and bounded by Timeout.
type GoRunner struct {
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewGoRunner(timeout time.Duration) *GoRunner {
	return &GoRunner{Timeout: timeout}
}

func (r *GoRunner) Go(ctx context.Context, job string, fn func(ctx context.Context)) {
	ctx = logger.WithLogFields(context.WithoutCancel(ctx), logger.LogFields{
		JobID: logger.Ptr(uuid.NewString()),
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		if r.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.Timeout)
			defer cancel()
		}
		runSafe(ctx, job, fn)
	}()
}

// Wait blocks until every started job has returned.
func (r *GoRunner) Wait() {
	r.wg.Wait()
}

// InlineRunner runs jobs on the calling goroutine.
type InlineRunner struct{}

func (InlineRunner) Go(ctx context.Context, job string, fn func(ctx context.Context)) {
	runSafe(ctx, job, fn)
}

func runSafe(ctx context.Context, job string, fn func(ctx context.Context)) {
	sc := logger.StartSpan(ctx, "job."+job)
	defer sc.End()
	ctx = sc.Context()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in background job", "job", job, "panic", r)
		}
	}()

	start := time.Now()
	fn(ctx)
	slog.DebugContext(ctx, "background job finished", "job", job, "duration_ms", time.Since(start).Milliseconds())
}
