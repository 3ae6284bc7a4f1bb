package repository

import (
	"context"
	"sync"

	"restops/internal/model"
)

// MemberRepository holds the team roster in memory, in insertion order.
type MemberRepository struct {
	mu      sync.RWMutex
	members []model.Member
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// Create adds a new member to the roster
func (r *MemberRepository) Create(_ context.Context, member model.Member) model.Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, member)
	return member
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(_ context.Context, id string) (model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Member{}, ErrMemberNotFound
}

// GetAll returns a copy of the roster in insertion order
func (r *MemberRepository) GetAll(_ context.Context) []model.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Member, len(r.members))
	copy(out, r.members)
	return out
}

// ActiveIDs returns the ids of active members in roster order. This is the
// roster order workload balancing breaks ties by.
func (r *MemberRepository) ActiveIDs(_ context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, m := range r.members {
		if m.IsActive {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Delete removes a member by ID
func (r *MemberRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.members {
		if r.members[i].ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}
