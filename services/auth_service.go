package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"canteen/entity"
	"canteen/pkg/apperr"
	"canteen/repository"
	"canteen/utils"
)

// AuthService handles register/login. Every issued token goes through the
// same TokenManager the middlewares verify with.
type AuthService struct {
	Users   *repository.UserRepository
	Tokens  *utils.TokenManager
	Timeout time.Duration
}

func NewAuthService(users *repository.UserRepository, tokens *utils.TokenManager, timeout time.Duration) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Timeout: timeout}
}

type RegisterIn struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

func (s *AuthService) Register(ctx context.Context, in *RegisterIn) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.Users.CountByEmail(ctx, email)
	if err != nil {
		return nil, persistence(err)
	}
	if count > 0 {
		return nil, apperr.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      "customer",
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, persistence(err)
	}
	return user, nil
}

// Login verifies the password and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	return user, nil
}
