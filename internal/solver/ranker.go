// internal/solver/ranker.go
//
// Parallel ranking of candidate guesses by expected information.
//
// Scheduling:
//   - One task per guess in the pool, run on an errgroup limited to a fixed
//     number of workers (runtime.NumCPU by default).
//   - Every task reads the shared candidate snapshot and writes only its own
//     slots of the result and memo slices; tasks never talk to each other.
//   - Tasks only read the shared feedback cache. New codes go to a per-task
//     feedback.Memo that is merged into the cache after the join.
//   - Wait is the join barrier. Results are sorted after it, so the output
//     order never depends on task completion order.
//   - A started batch always runs to completion; there is no cancellation.

package solver

import (
	"cmp"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-assist/internal/feedback"
)

// GuessScore pairs a guess with its expected information in bits.
type GuessScore struct {
	Guess   string  `json:"guess"`
	Entropy float64 `json:"entropy"`
}

// Ranker scores a guess pool against a candidate set.
type Ranker struct {
	cache    *feedback.Cache
	workers  int
	progress func()
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers sets the worker pool size. n <= 0 keeps the default.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProgress registers a callback invoked once per scored guess. It is
// called from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func()) Option {
	return func(r *Ranker) { r.progress = fn }
}

// NewRanker builds a Ranker around cache. A nil cache gets a fresh one.
func NewRanker(cache *feedback.Cache, opts ...Option) *Ranker {
	if cache == nil {
		cache = feedback.NewCache()
	}
	r := &Ranker{cache: cache, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the feedback cache the ranker scores through.
func (r *Ranker) Cache() *feedback.Cache { return r.cache }

// Workers returns the worker pool size.
func (r *Ranker) Workers() int { return r.workers }

// Rank scores every guess in pool against candidates and returns the scores
// sorted by entropy descending. Ties are broken by guess ascending
// (lexicographic), so the result is fully deterministic.
func (r *Ranker) Rank(pool, candidates []string) []GuessScore {
	start := time.Now()

	// Snapshot so callers may replace their slice while we run.
	snapshot := slices.Clone(candidates)
	scores := make([]GuessScore, len(pool))
	memos := make([]*feedback.Memo, len(pool))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, guess := range pool {
		i, guess := i, guess
		g.Go(func() error {
			memo := r.cache.Memo()
			scores[i] = GuessScore{Guess: guess, Entropy: Entropy(memo, guess, snapshot)}
			memos[i] = memo
			if r.progress != nil {
				r.progress()
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never fail

	r.cache.Merge(memos...)
	SortScores(scores)

	elapsed := time.Since(start)
	rankDuration.Observe(elapsed.Seconds())
	guessesScored.Add(float64(len(pool)))
	log.Debug().
		Int("pool", len(pool)).
		Int("candidates", len(snapshot)).
		Int("workers", r.workers).
		Dur("elapsed", elapsed).
		Msg("ranked guesses")

	return scores
}

// SortScores orders scores by entropy descending, then guess ascending.
func SortScores(scores []GuessScore) {
	slices.SortFunc(scores, func(a, b GuessScore) int {
		if c := cmp.Compare(b.Entropy, a.Entropy); c != 0 {
			return c
		}
		return cmp.Compare(a.Guess, b.Guess)
	})
}

// GuessPool picks which words to score. While more than threshold candidates
// remain every allowed word is scored to maximise information; at or below
// it only the candidates are scored so the answer itself can be guessed.
func GuessPool(allowed, candidates []string, threshold int) []string {
	if len(candidates) > threshold {
		return allowed
	}
	return candidates
}

// Top returns at most k leading scores.
func Top(scores []GuessScore, k int) []GuessScore {
	if k < 0 {
		k = 0
	}
	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k]
}
