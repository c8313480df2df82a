package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/internal/pkg/serverutils"
	"ai-summarizer-be/internal/repository/contract"
	"ai-summarizer-be/internal/repository/specification"
	"ai-summarizer-be/internal/repository/unitofwork"
	"ai-summarizer-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const authModule = "AUTH"

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, jti string, remaining time.Duration) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	Verify(ctx context.Context, userId uuid.UUID) (*dto.VerifyTokenResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	denylist   contract.TokenDenylistRepository
	cfg        config.AuthConfig
	log        logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	denylist contract.TokenDenylistRepository,
	cfg config.AuthConfig,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		publisher:  publisher,
		denylist:   denylist,
		cfg:        cfg,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperror.WithMessage(apperror.ErrValidation, "Passwords do not match", nil)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	// 1. Uniqueness
	count, err := uow.UserRepository().Count(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.WithMessage(apperror.ErrConflict, "Email already registered", nil)
	}
	count, err = uow.UserRepository().Count(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.WithMessage(apperror.ErrConflict, "Username already taken", nil)
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. Save
	now := time.Now().UTC()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		Username:     req.Username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(authModule, "User registered", map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	publishEvent(ctx, s.publisher, s.log, authModule, events.New(events.TypeUserRegistered, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	}))

	return toUserDTO(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: strings.TrimSpace(req.Username)})
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.log.Warn(authModule, "Failed login attempt", map[string]interface{}{"login": req.Username})
		return nil, apperror.WithMessage(apperror.ErrUnauthorized, "Incorrect username or password", nil)
	}
	if !user.IsActive {
		return nil, apperror.WithMessage(apperror.ErrValidation, "Inactive user", nil)
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.log, authModule, events.New(events.TypeUserLogin, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	}))

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        *toUserDTO(user),
	}, nil
}

func (s *authService) issueToken(user *entity.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := serverutils.AccessClaims{
		UserId:   user.Id.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.UTC(), nil
}

// Logout revokes the token id until the token would have expired anyway.
func (s *authService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if jti == "" || remaining <= 0 || s.denylist == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, remaining)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.activeUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *authService) Verify(ctx context.Context, userId uuid.UUID) (*dto.VerifyTokenResponse, error) {
	user, err := s.activeUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyTokenResponse{Valid: true, UserId: user.Id, Username: user.Username}, nil
}

func (s *authService) activeUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.WithMessage(apperror.ErrUnauthorized, "User not found", errors.New("user missing"))
	}
	if !user.IsActive {
		return nil, apperror.WithMessage(apperror.ErrValidation, "Inactive user", nil)
	}
	return user, nil
}

func toUserDTO(user *entity.User) *dto.UserDTO {
	return &dto.UserDTO{
		Id:          user.Id,
		Email:       user.Email,
		Username:    user.Username,
		FullName:    user.FullName,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt,
	}
}
