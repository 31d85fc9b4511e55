package repository

import (
	"context"
	"sync"
	"time"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockOrderRepository é uma implementação em memória usada nos testes.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders []model.Order
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (r *MockOrderRepository) Create(ctx context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	touch(&o.CreatedAt, &o.UpdatedAt)
	r.orders = append(r.orders, *o)
	return nil
}

func (r *MockOrderRepository) FindAll(ctx context.Context, ownerID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if ownerID != "" && r.orders[i].UserID != ownerID {
			continue
		}
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *MockOrderRepository) FindByDay(ctx context.Context, start, end time.Time, skip, limit int64) ([]model.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var day []model.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		day = append(day, o)
	}

	total := int64(len(day))
	if limit <= 0 {
		return day, total, nil
	}

	if skip >= total {
		return nil, total, nil
	}
	endIdx := skip + limit
	if endIdx > total {
		endIdx = total
	}
	return day[skip:endIdx], total, nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID.Hex() == id {
			out := o
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockOrderRepository) Replace(ctx context.Context, id string, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.orders {
		if existing.ID.Hex() == id {
			o.ID = existing.ID
			touch(&o.CreatedAt, &o.UpdatedAt)
			r.orders[i] = *o
			return nil
		}
	}
	return ErrNotFound
}

func (r *MockOrderRepository) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID.Hex() == id {
			r.orders[i].PaymentStatus = status
			r.orders[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (r *MockOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID.Hex() == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
