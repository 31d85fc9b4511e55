package repository

import (
	"context"
	"sync"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockClientRepository é uma implementação em memória usada nos testes.
// A ordem de inserção faz as vezes do índice por created_at: listagens
// devolvem do mais recente para o mais antigo.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients []model.Client
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{}
}

func (r *MockClientRepository) Create(ctx context.Context, c *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.clients {
		if existing.Phone == c.Phone {
			return ErrDuplicate
		}
	}

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	touch(&c.CreatedAt, &c.UpdatedAt)
	r.clients = append(r.clients, *c)
	return nil
}

func (r *MockClientRepository) FindAll(ctx context.Context, ownerID string) ([]model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Client
	for i := len(r.clients) - 1; i >= 0; i-- {
		if ownerID != "" && r.clients[i].UserID != ownerID {
			continue
		}
		out = append(out, r.clients[i])
	}
	return out, nil
}

func (r *MockClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.ID.Hex() == id {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockClientRepository) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.Phone == phone {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockClientRepository) Replace(ctx context.Context, id string, c *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.clients {
		if existing.ID.Hex() != id && existing.Phone == c.Phone {
			return ErrDuplicate
		}
	}
	for i, existing := range r.clients {
		if existing.ID.Hex() == id {
			c.ID = existing.ID
			touch(&c.CreatedAt, &c.UpdatedAt)
			r.clients[i] = *c
			return nil
		}
	}
	return ErrNotFound
}

func (r *MockClientRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.clients {
		if c.ID.Hex() == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
