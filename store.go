package calchub

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Evaluation is one recorded trip through the expression pipeline.
// Result and Value are set on success, Error on failure.
type Evaluation struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result,omitempty"`
	Value      *float64  `json:"value,omitempty"`
	Error      string    `json:"error,omitempty"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store keeps a bounded in-memory history of evaluations.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*Evaluation
	order []string // insertion order, oldest first
	limit int
}

// NewStore creates a store that keeps at most limit evaluations.
func NewStore(limit int) *Store {
	return &Store{
		byID:  make(map[string]*Evaluation),
		limit: limit,
	}
}

// Add assigns ev an ID and timestamp and records it, evicting the oldest
// entries once the limit is exceeded. Returns ev for convenience.
func (st *Store) Add(ev *Evaluation) *Evaluation {
	st.mu.Lock()
	defer st.mu.Unlock()

	ev.ID = uuid.NewString()
	ev.CreatedAt = time.Now().UTC()
	st.byID[ev.ID] = ev
	st.order = append(st.order, ev.ID)

	for len(st.order) > st.limit {
		oldest := st.order[0]
		st.order = st.order[1:]
		delete(st.byID, oldest)
	}
	return ev
}

// Get returns the evaluation with the given ID.
func (st *Store) Get(id string) (*Evaluation, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ev, ok := st.byID[id]
	return ev, ok
}

// Recent returns up to n evaluations, newest first. n <= 0 returns all.
func (st *Store) Recent(n int) []*Evaluation {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if n <= 0 || n > len(st.order) {
		n = len(st.order)
	}
	out := make([]*Evaluation, 0, n)
	for i := len(st.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, st.byID[st.order[i]])
	}
	return out
}

// Len returns the number of stored evaluations.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.order)
}

// CountBySource returns how many stored evaluations each source produced.
func (st *Store) CountBySource() map[string]int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	counts := make(map[string]int)
	for _, ev := range st.byID {
		counts[ev.Source]++
	}
	return counts
}
