// Package fanout runs per-player work on a process-wide worker pool and joins
// the results all-or-nothing.
package fanout

import (
	"context"
	"fmt"

	"mastery-service/internal/config"
	"mastery-service/internal/constants"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
)

type Pool struct {
	pool   *ants.Pool
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Pool, error) {
	return NewWithSize(cfg.WorkerPoolSize, logger)
}

func NewWithSize(size int, logger zerolog.Logger) (*Pool, error) {
	pool, err := ants.NewPool(size,
		ants.WithExpiryDuration(constants.PoolExpiryDuration),
		ants.WithPanicHandler(func(p any) {
			logger.Error().Interface("panic", p).Msg("worker panicked")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	logger.Info().Int("size", size).Msg("worker pool started")
	return &Pool{pool: pool, logger: logger}, nil
}

func (p *Pool) Release() {
	p.pool.Release()
	p.logger.Info().Msg("worker pool released")
}

type result[Out any] struct {
	idx int
	val Out
	err error
}

// Gather runs fn once per input on the pool. It returns the outputs in input
// order, or the first error observed, in which case it stops waiting for the
// remaining tasks and cancels the context handed to them. Tasks that are still
// running finish in the background and their results are dropped.
func Gather[In, Out any](ctx context.Context, p *Pool, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	if len(inputs) == 0 {
		return []Out{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so abandoned tasks never block
	results := make(chan result[Out], len(inputs))

	for i, in := range inputs {
		if err := p.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					results <- result[Out]{idx: i, err: fmt.Errorf("task %d panicked: %v", i, r)}
				}
			}()
			val, err := fn(ctx, in)
			results <- result[Out]{idx: i, val: val, err: err}
		}); err != nil {
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	out := make([]Out, len(inputs))
	for range inputs {
		select {
		case r := <-results:
			if r.err != nil {
				return nil, r.err
			}
			out[r.idx] = r.val
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}
