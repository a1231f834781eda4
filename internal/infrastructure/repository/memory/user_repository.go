package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	items   map[string]user.User
	byEmail map[string]string
}

func NewUserRepository(seed []user.User) *UserRepository {
	items := make(map[string]user.User, len(seed))
	byEmail := make(map[string]string, len(seed))
	for _, item := range seed {
		item.Email = strings.ToLower(item.Email)
		items[item.ID] = item
		byEmail[item.Email] = item.ID
	}
	return &UserRepository{items: items, byEmail: byEmail}
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.Email = strings.ToLower(item.Email)
	r.items[item.ID] = item
	r.byEmail[item.Email] = item.ID

	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return user.User{}, false, nil
	}
	item, ok := r.items[id]

	return item, ok, nil
}

func (r *UserRepository) Update(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}
	current.FirstName = item.FirstName
	current.LastName = item.LastName
	current.TeamName = item.TeamName
	current.Balance = item.Balance
	current.Role = item.Role
	current.UpdatedAt = item.UpdatedAt
	r.items[item.ID] = current

	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil
	}
	delete(r.byEmail, item.Email)
	delete(r.items, id)

	return nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}
