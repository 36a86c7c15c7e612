package stress

import (
	"context"
	"math/rand"
	"slices"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/rbtree/pkg/rbtree"
)

var log = logrus.WithField("component", "stress")

var ErrMismatch = errors.New("tree disagrees with the shadow model")

type Config struct {
	Workers     int     `json:"workers" yaml:"workers"`
	Operations  int     `json:"operations" yaml:"operations"`
	KeySpace    int64   `json:"keySpace" yaml:"keySpace"`
	EraseRatio  float64 `json:"eraseRatio" yaml:"eraseRatio"`
	VerifyEvery int     `json:"verifyEvery" yaml:"verifyEvery"`
	Seed        int64   `json:"seed" yaml:"seed"`
}

func (c Config) Validate() error {
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}

	if c.Operations < 0 {
		return errors.Errorf("operations must not be negative, got %d", c.Operations)
	}

	if c.KeySpace <= 0 {
		return errors.Errorf("key space must be positive, got %d", c.KeySpace)
	}

	if c.EraseRatio < 0 || c.EraseRatio > 1 {
		return errors.Errorf("erase ratio must be within [0, 1], got %f", c.EraseRatio)
	}

	return nil
}

type WorkerResult struct {
	ID          int
	Inserts     int
	Erases      int
	Misses      int
	Size        int
	Height      int
	BlackHeight int
	Stats       rbtree.Stats
}

type Result struct {
	Workers     []WorkerResult
	Stats       rbtree.Stats
	Size        int
	DepthMean   float64
	DepthStdDev float64
	Duration    time.Duration
}

// Runner drives one independent tree per worker with random inserts and
// erases and checks every tree against a shadow multiset.
type Runner struct {
	config Config
	trees  []*rbtree.Tree[int64]
	sizes  []atomic.Int64

	// OnStep is called by the workers after every operation, it must be safe
	// for concurrent use.
	OnStep func()
}

func NewRunner(config Config) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		config: config,
		trees:  make([]*rbtree.Tree[int64], config.Workers),
		sizes:  make([]atomic.Int64, config.Workers),
	}

	for i := range r.trees {
		r.trees[i] = rbtree.New[int64]()
	}

	return r, nil
}

// Stats sums the counters of every worker tree, it can be called while the runner is running.
func (r *Runner) Stats() rbtree.Stats {
	var total rbtree.Stats
	for _, tree := range r.trees {
		total = total.Add(tree.Stats())
	}
	return total
}

// Size returns the total number of keys held by the worker trees.
func (r *Runner) Size() int {
	var total int64
	for i := range r.sizes {
		total += r.sizes[i].Load()
	}
	return int(total)
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	results := make([]WorkerResult, r.config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.config.Workers; i++ {
		id := i
		g.Go(func() error {
			result, err := r.runWorker(ctx, id)
			if err != nil {
				return errors.Wrapf(err, "worker #%d", id)
			}

			results[id] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var depths []float64
	result := &Result{Workers: results, Duration: time.Since(startTime)}
	for i, tree := range r.trees {
		result.Stats = result.Stats.Add(results[i].Stats)
		result.Size += results[i].Size
		depths = append(depths, tree.Depths()...)
	}

	if len(depths) > 0 {
		result.DepthMean, result.DepthStdDev = stat.MeanStdDev(depths, nil)
	}

	return result, nil
}

func (r *Runner) runWorker(ctx context.Context, id int) (*WorkerResult, error) {
	tree := r.trees[id]
	rnd := rand.New(rand.NewSource(r.config.Seed + int64(id)))
	shadow := make(map[int64]int)
	result := &WorkerResult{ID: id}

	logger := log.WithField("worker", id)
	logger.Debugf("starting %d operations", r.config.Operations)

	for step := 1; step <= r.config.Operations; step++ {
		if step%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		key := rnd.Int63n(r.config.KeySpace)
		if tree.Size() > 0 && rnd.Float64() < r.config.EraseRatio {
			erased := tree.Erase(tree.Find(key))
			if erased != (shadow[key] > 0) {
				return nil, errors.Wrapf(ErrMismatch, "step %d: erase %d returned %v", step, key, erased)
			}

			if erased {
				result.Erases++
				shadow[key]--
			} else {
				result.Misses++
			}
		} else {
			tree.Insert(key)
			shadow[key]++
			result.Inserts++
		}

		r.sizes[id].Store(int64(tree.Size()))

		if r.config.VerifyEvery > 0 && step%r.config.VerifyEvery == 0 {
			if err := tree.Verify(); err != nil {
				return nil, errors.Wrapf(err, "step %d", step)
			}
		}

		if r.OnStep != nil {
			r.OnStep()
		}
	}

	if err := tree.Verify(); err != nil {
		return nil, err
	}

	if err := compareShadow(tree, shadow); err != nil {
		return nil, err
	}

	result.Size = tree.Size()
	result.Height = tree.Height()
	result.BlackHeight = tree.BlackHeight()
	result.Stats = tree.Stats()

	logger.Debugf("done: size=%d height=%d rotations=%d", result.Size, result.Height, result.Stats.Rotations)
	return result, nil
}

func compareShadow(tree *rbtree.Tree[int64], shadow map[int64]int) error {
	var expected []int64
	for key, count := range shadow {
		for i := 0; i < count; i++ {
			expected = append(expected, key)
		}
	}
	slices.Sort(expected)

	actual := tree.ToSortedSlice(tree.Size())
	if len(actual) != len(expected) {
		return errors.Wrapf(ErrMismatch, "export has %d keys, expected %d", len(actual), len(expected))
	}

	for i := range actual {
		if actual[i] != expected[i] {
			return errors.Wrapf(ErrMismatch, "export differs at %d: %d != %d", i, actual[i], expected[i])
		}
	}

	return nil
}
