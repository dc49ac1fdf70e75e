package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/jwt"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
	"github.com/Leyinc1/manuelbest/internal/lib/validate"
)

const minPasswordLength = 6

type IdentityService struct {
	log        *slog.Logger
	users      UserProvider
	tokens     TokenIssuer
	bcryptCost int
}

type UserProvider interface {
	CreateUser(ctx context.Context, user models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type TokenIssuer interface {
	NewToken(userID, email string) (string, error)
	Parse(token string) (*jwt.Claims, error)
}

func NewIdentityService(
	log *slog.Logger,
	users UserProvider,
	tokens TokenIssuer,
	bcryptCost int) *IdentityService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &IdentityService{
		log:        log,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *IdentityService) Register(ctx context.Context, email, password string) (string, error) {
	const op = "service.identity.Register"

	email = strings.ToLower(strings.TrimSpace(email))

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("registering user")

	if !validate.Email(email) {
		log.Warn("invalid email")
		return "", fmt.Errorf("%s: %w", op, apperrors.ErrInvalidEmail)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		log.Warn("password too short")
		return "", fmt.Errorf("%s: %w", op, apperrors.ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%s: %w", op, apperrors.Validation("password must be at most 72 bytes"))
		}
		log.Error("failed to hash password", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Warn("email already registered")
		} else {
			log.Error("failed to create user", sl.Err(err))
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID))

	return user.ID, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (models.Session, error) {
	const op = "service.identity.Login"

	email = strings.ToLower(strings.TrimSpace(email))

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Warn("unknown email")
			return models.Session{}, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
		}
		log.Error("failed to load user", sl.Err(err))
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("password mismatch")
		return models.Session{}, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
	}

	token, err := s.tokens.NewToken(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return models.Session{
		Token: token,
		User:  models.Identity{UserID: user.ID, Email: user.Email},
	}, nil
}

// VerifyToken resolves a session token to the identity it was issued for.
func (s *IdentityService) VerifyToken(ctx context.Context, token string) (models.Identity, error) {
	const op = "service.identity.VerifyToken"

	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("token rejected", slog.String("op", op), sl.Err(err))
		return models.Identity{}, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	return models.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
