package service

import (
	"context"
	"errors"
	"os"
	"time"

	"otakupal-be/internal/dto"
	"otakupal-be/internal/entity"
	"otakupal-be/internal/repository/contract"
	"otakupal-be/internal/repository/specification"
	"otakupal-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userId uuid.UUID)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	convStore  contract.ActiveConversationStore
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, convStore contract.ActiveConversationStore) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		convStore:  convStore,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id, Username: user.Username, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Lookup by username first, then by email.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.UsernameOrEmail})
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.UsernameOrEmail})
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":  user.Id.String(),
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    signedToken,
		UserId:   user.Id,
		Username: user.Username,
	}, nil
}

// Logout drops the caller's active-conversation pointer. Tokens are
// stateless; the client discards its copy.
func (s *authService) Logout(ctx context.Context, userId uuid.UUID) {
	s.convStore.Clear(ctx, userId)
}
