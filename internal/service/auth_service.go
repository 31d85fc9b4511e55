package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-track/internal/model"
	"delivery-track/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Erros de negócio exportados (os usa o controller)
var (
	ErrUserNotFound  = errors.New("usuário não encontrado")
	ErrWrongPassword = errors.New("senha incorreta")
)

// AuthUser é o que o middleware guarda no contexto da requisição.
type AuthUser struct {
	ID    string
	Name  string
	Email string
	Role  model.Role
}

// AuthService emite e valida tokens JWT assinados localmente (HS256).
type AuthService struct {
	userRepo  UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login autentica por email e senha e devolve o token com o usuário.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrWrongPassword
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.Hex(),
		"name":   user.Name,
		"email":  user.Email,
		"role":   string(user.Role),
		"exp":    now.Add(s.tokenTTL).Unix(),
		"iat":    now.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar token: %w", err)
	}
	return signed, nil
}

// ValidateToken confere assinatura e expiração e extrai o usuário.
func (s *AuthService) ValidateToken(tokenString string) (*AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, errors.New("token sem identificação de usuário")
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &AuthUser{
		ID:    userID,
		Name:  name,
		Email: email,
		Role:  model.Role(role),
	}, nil
}

func (s *AuthService) IsAdmin(user *AuthUser) bool {
	return user.Role == model.RoleAdmin
}

// TokenTTL expõe a validade configurada, usada para o cookie de sessão.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
