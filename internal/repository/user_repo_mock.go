package repository

import (
	"context"
	"sync"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository é uma implementação em memória usada nos testes.
type MockUserRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (r *MockUserRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	touch(&u.CreatedAt, &u.UpdatedAt)
	r.users = append(r.users, *u)
	return nil
}

func (r *MockUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		out = append(out, r.users[i])
	}
	return out, nil
}

func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID.Hex() == id {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockUserRepository) Replace(ctx context.Context, id string, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID.Hex() != id && existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	for i, existing := range r.users {
		if existing.ID.Hex() == id {
			u.ID = existing.ID
			touch(&u.CreatedAt, &u.UpdatedAt)
			r.users[i] = *u
			return nil
		}
	}
	return ErrNotFound
}

func (r *MockUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID.Hex() == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
