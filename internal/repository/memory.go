package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

// MemoryRepository keeps the catalog in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	catalog model.Catalog
}

// NewMemoryRepository constructs a MemoryRepository holding a copy of seed.
func NewMemoryRepository(seed model.Catalog) *MemoryRepository {
	return &MemoryRepository{catalog: cloneCatalog(seed)}
}

// List returns a copy of the catalog.
func (r *MemoryRepository) List(ctx context.Context) (model.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCatalog(r.catalog), nil
}

// Signup appends email to the named activity's roster.
func (r *MemoryRepository) Signup(ctx context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(activity)
	if i < 0 {
		return ErrActivityNotFound
	}
	a := &r.catalog[i].Activity
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if a.IsFull() {
		return ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Remove deletes email from the named activity's roster.
func (r *MemoryRepository) Remove(ctx context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(activity)
	if i < 0 {
		return ErrActivityNotFound
	}
	a := &r.catalog[i].Activity
	j := a.ParticipantIndex(email)
	if j < 0 {
		return ErrParticipantNotFound
	}
	a.Participants = slices.Delete(a.Participants, j, j+1)
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) index(activity string) int {
	return slices.IndexFunc(r.catalog, func(e model.Entry) bool { return e.Name == activity })
}

func cloneCatalog(c model.Catalog) model.Catalog {
	out := make(model.Catalog, len(c))
	for i, e := range c {
		out[i] = e
		out[i].Activity.Participants = append([]string{}, e.Activity.Participants...)
	}
	return out
}
