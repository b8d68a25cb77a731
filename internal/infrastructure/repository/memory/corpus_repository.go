package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

// CorpusRepository holds the corpus in memory and records every snapshot it
// would have written.
type CorpusRepository struct {
	mu        sync.RWMutex
	current   corpus.Corpus
	exists    bool
	snapshots []corpus.Corpus
	saves     int
}

var _ corpus.Repository = (*CorpusRepository)(nil)

// NewCorpusRepository starts from seed. A nil seed behaves like a missing file.
func NewCorpusRepository(seed *corpus.Corpus) *CorpusRepository {
	repo := &CorpusRepository{}
	if seed != nil {
		repo.current = cloneCorpus(*seed)
		repo.exists = true
	}
	return repo
}

func (r *CorpusRepository) Load(_ context.Context) (corpus.Corpus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return corpus.Corpus{Matches: []match.Match{}, Events: []event.Event{}}, nil
	}
	return cloneCorpus(r.current), nil
}

func (r *CorpusRepository) Save(_ context.Context, data corpus.Corpus, snapshotAt time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := ""
	if r.exists {
		r.snapshots = append(r.snapshots, cloneCorpus(r.current))
		snapshot = "memory://snapshot/" + snapshotAt.UTC().Format("20060102")
	}
	r.current = cloneCorpus(data)
	r.exists = true
	r.saves++
	return snapshot, nil
}

// Current returns the latest saved corpus.
func (r *CorpusRepository) Current() corpus.Corpus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCorpus(r.current)
}

func (r *CorpusRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func (r *CorpusRepository) Snapshots() []corpus.Corpus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]corpus.Corpus, 0, len(r.snapshots))
	for _, item := range r.snapshots {
		out = append(out, cloneCorpus(item))
	}
	return out
}

func cloneCorpus(c corpus.Corpus) corpus.Corpus {
	out := corpus.Corpus{
		Matches: append([]match.Match{}, c.Matches...),
		Events:  make([]event.Event, 0, len(c.Events)),
	}
	for _, item := range c.Events {
		out.Events = append(out.Events, item.Clone())
	}
	return out
}
