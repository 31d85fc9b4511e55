package repository

import (
	"context"
	"sync"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository é uma implementação em memória usada nos testes.
type MockProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (r *MockProductRepository) Create(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	touch(&p.CreatedAt, &p.UpdatedAt)
	r.products = append(r.products, *p)
	return nil
}

func (r *MockProductRepository) FindAll(ctx context.Context, ownerID string) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Product
	for i := len(r.products) - 1; i >= 0; i-- {
		if ownerID != "" && r.products[i].UserID != ownerID {
			continue
		}
		out = append(out, r.products[i])
	}
	return out, nil
}

func (r *MockProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID.Hex() == id {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockProductRepository) Replace(ctx context.Context, id string, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID.Hex() == id {
			p.ID = existing.ID
			touch(&p.CreatedAt, &p.UpdatedAt)
			r.products[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID.Hex() == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
