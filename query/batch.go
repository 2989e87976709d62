package query

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/collide/logging"
	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

// Pair is two placed shapes to query against each other.
type Pair[V spatialmath.Vector[V]] struct {
	Name string
	M1   spatialmath.Isometry[V]
	G1   shape.Shape[V]
	M2   spatialmath.Isometry[V]
	G2   shape.Shape[V]
}

// Batch runs independent pair queries concurrently. Shapes are only read by queries, so pairs may
// share shapes.
type Batch[V spatialmath.Vector[V]] struct {
	logger      logging.Logger
	parallelism int
}

// NewBatch returns a runner using at most parallelism goroutines, or one per CPU when
// parallelism is not positive.
func NewBatch[V spatialmath.Vector[V]](logger logging.Logger, parallelism int) *Batch[V] {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return &Batch[V]{logger: logger, parallelism: parallelism}
}

// run calls fn on every pair index. It stops at the first error or when ctx is done.
func (b *Batch[V]) run(ctx context.Context, op string, pairs []Pair[V], fn func(i int) error) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)
	for i := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return errors.Wrapf(err, "%s of pair %d (%s)", op, i, pairs[i].Name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// the loop may have stopped early without any goroutine seeing the cancellation
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugw("batch done", "op", op, "pairs", len(pairs), "elapsed", time.Since(start))
	return nil
}

// Proximity classifies every pair against margin.
func (b *Batch[V]) Proximity(ctx context.Context, pairs []Pair[V], margin float64) ([]Proximity, error) {
	if err := checkMargin(margin); err != nil {
		return nil, err
	}
	out := make([]Proximity, len(pairs))
	err := b.run(ctx, "proximity", pairs, func(i int) error {
		p := pairs[i]
		prox, err := ComputeProximity(p.M1, p.G1, p.M2, p.G2, margin)
		if err != nil {
			return err
		}
		b.logger.Debugw("proximity", "pair", p.Name, "result", prox)
		out[i] = prox
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Distance computes the distance of every pair.
func (b *Batch[V]) Distance(ctx context.Context, pairs []Pair[V]) ([]float64, error) {
	out := make([]float64, len(pairs))
	err := b.run(ctx, "distance", pairs, func(i int) error {
		p := pairs[i]
		dist, err := Distance(p.M1, p.G1, p.M2, p.G2)
		if err != nil {
			return err
		}
		b.logger.Debugw("distance", "pair", p.Name, "result", dist)
		out[i] = dist
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
