package service

import (
	"context"
	"strings"
	"time"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/specification"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionTerminator closes the realtime connections of a user.
type SessionTerminator interface {
	DisconnectUser(userID uuid.UUID)
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *serverutils.TokenClaims) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	tokens         *serverutils.TokenManager
	blocklist      contract.TokenBlocklist
	terminator     SessionTerminator
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *serverutils.TokenManager,
	blocklist contract.TokenBlocklist,
	terminator SessionTerminator,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		tokens:         tokens,
		blocklist:      blocklist,
		terminator:     terminator,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("The email address is already in use.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		DisplayName:  validation.Sanitize(strings.TrimSpace(req.Name)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id})

	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.UserRegistered, map[string]interface{}{
		"user_id":      user.Id.String(),
		"email":        user.Email,
		"display_name": user.DisplayName,
	}))

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthenticated("Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthenticated("Invalid email or password.")
	}

	signed, claims, err := s.tokens.Issue(user.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("AUTH", "User signed in", map[string]interface{}{"user_id": user.Id})

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   claims.ExpiresAt,
		User: dto.UserDTO{
			Id:          user.Id,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime and closes
// the user's realtime feed.
func (s *authService) Logout(ctx context.Context, claims *serverutils.TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return apperror.Unauthenticated("")
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl > 0 {
		if err := s.blocklist.Revoke(ctx, claims.TokenID, ttl); err != nil {
			return apperror.Unavailable(err)
		}
	}

	if s.terminator != nil {
		s.terminator.DisconnectUser(claims.UserID)
	}

	s.logger.Info("AUTH", "User signed out", map[string]interface{}{"user_id": claims.UserID})
	return nil
}
