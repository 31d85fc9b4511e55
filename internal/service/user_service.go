package service

import (
	"context"
	"errors"
	"fmt"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
	"delivery-track/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Interface que o repository deve implementar
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Replace(ctx context.Context, id string, u *model.User) error
	Delete(ctx context.Context, id string) error
}

var ErrEmailTaken = errors.New("email já cadastrado")

// UserService cuida do cadastro de contas (somente admin chega aqui).
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         coerceRole(req.Role),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*model.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: existing.PasswordHash,
		Role:         coerceRole(req.Role),
		CreatedAt:    existing.CreatedAt,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar hash da senha: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Replace(ctx, id, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Qualquer valor fora de "admin" vira usuário comum.
func coerceRole(role string) model.Role {
	if role == string(model.RoleAdmin) {
		return model.RoleAdmin
	}
	return model.RoleUser
}
