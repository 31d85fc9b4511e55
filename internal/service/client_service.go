package service

import (
	"context"
	"errors"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
	"delivery-track/internal/repository"
)

// Interface que o repository deve implementar
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindAll(ctx context.Context, ownerID string) ([]model.Client, error)
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindByPhone(ctx context.Context, phone string) (*model.Client, error)
	Replace(ctx context.Context, id string, c *model.Client) error
	Delete(ctx context.Context, id string) error
}

var ErrPhoneTaken = errors.New("telefone já cadastrado")

type ClientService struct {
	repo ClientRepository
}

func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// List devolve os clientes do mais recente para o mais antigo. ownerID
// vazio lista todos; preenchido, restringe ao dono.
func (s *ClientService) List(ctx context.Context, ownerID string) ([]model.Client, error) {
	return s.repo.FindAll(ctx, ownerID)
}

func (s *ClientService) Create(ctx context.Context, userID string, req dto.ClientRequest) (*model.Client, error) {
	if _, err := s.repo.FindByPhone(ctx, req.Phone); err == nil {
		return nil, ErrPhoneTaken
	}

	client := &model.Client{
		UserID:  userID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return client, nil
}

// Update substitui o documento inteiro, preservando dono e data de criação.
func (s *ClientService) Update(ctx context.Context, id string, req dto.ClientRequest) (*model.Client, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		UserID:    existing.UserID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		CreatedAt: existing.CreatedAt,
	}

	if err := s.repo.Replace(ctx, id, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
