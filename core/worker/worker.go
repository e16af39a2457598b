package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/internal/subscription"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
)

// Worker is a long-running background task tied to the application lifecycle.
type Worker interface {
	Run(ctx context.Context) error
}

// Processor consumes batches of items pulled off a Source.
type Processor[T any] interface {
	Name() string
	Process(ctx context.Context, items []T) error
	Shutdown(ctx context.Context) error
}

// Source produces batches of items asynchronously through a subscription.
type Source[T any] interface {
	Name() string
	Subscribe(ctx context.Context, ch chan []T) (*subscription.ClientSubscription[[]T], error)
}

// Dispatcher pumps batches from a Source into a Processor until stopped.
type Dispatcher[T any] struct {
	Processor Processor[T]
	Source    Source[T]

	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

func New[T any](processor Processor[T], source Source[T]) *Dispatcher[T] {
	return &Dispatcher[T]{
		Processor: processor,
		Source:    source,

		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (d *Dispatcher[T]) Shutdown() error {
	return d.ShutdownWithContext(context.Background())
}

func (d *Dispatcher[T]) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.ShutdownWithContext(ctx)
}

func (d *Dispatcher[T]) ShutdownWithContext(ctx context.Context) (err error) {
	d.quitOnce.Do(func() {
		close(d.quit)
		select {
		case <-d.done:
		case <-time.After(180 * time.Second):
			err = errors.Wrap(errs.Timeout, "worker shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "worker shutdown context canceled")
		}
	})
	return
}

func (d *Dispatcher[T]) Run(ctx context.Context) error {
	defer close(d.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "worker"),
		slog.String("processor", d.Processor.Name()),
		slog.String("source", d.Source.Name()),
	)

	ch := make(chan []T)
	sub, err := d.Source.Subscribe(ctx, ch)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to source")
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-d.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping worker")
			if err := d.Processor.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to shutdown processor", slogx.Error(err))
				return errors.Wrap(err, "processor shutdown failed")
			}
			return nil
		case items := <-ch:
			if len(items) == 0 {
				continue
			}

			startAt := time.Now()
			if err := d.Processor.Process(ctx, items); err != nil {
				logger.ErrorContext(ctx, "Worker failed while processing", slogx.Error(err))
				return errors.Wrap(err, "process failed")
			}
			logger.DebugContext(ctx, "Processed items successfully",
				slogx.Int("total_items", len(items)),
				slogx.Duration("duration", time.Since(startAt)),
			)
		case <-sub.Done():
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "context done")
			}
			return nil
		case err := <-sub.Err():
			if err != nil {
				return errors.Wrap(err, "got error from source subscription")
			}
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		}
	}
}
