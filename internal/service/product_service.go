package service

import (
	"context"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
)

// Interface que o repository deve implementar
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindAll(ctx context.Context, ownerID string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Replace(ctx context.Context, id string, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context, ownerID string) ([]model.Product, error) {
	return s.repo.FindAll(ctx, ownerID)
}

func (s *ProductService) Create(ctx context.Context, userID string, req dto.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req dto.ProductRequest) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		UserID:      existing.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.repo.Replace(ctx, id, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
