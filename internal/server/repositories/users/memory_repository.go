package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
)

// MemoryRepository keeps users in process memory. It backs development runs
// without a DSN and the service tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.users[user.UserName] = *user
	return user, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, userName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[userName]
	return ok, nil
}

func (r *MemoryRepository) FindActive(ctx context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) UpdatePassword(ctx context.Context, userName, digest string) (bool, error) {
	return r.update(userName, func(u *models.User) { u.PasswordDigest = digest }), nil
}

func (r *MemoryRepository) UpdateActive(ctx context.Context, userName string, active bool) (bool, error) {
	return r.update(userName, func(u *models.User) { u.Active = active }), nil
}

func (r *MemoryRepository) update(userName string, fn func(u *models.User)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return false
	}
	fn(&u)
	r.users[userName] = u
	return true
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	result := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].UserName < result[j].UserName })
	return result, nil
}
