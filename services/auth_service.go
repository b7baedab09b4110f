package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("missing google credential")
	ErrGoogleNoEmail      = errors.New("google token has no email")
)

// AuthResult is a signed session plus the user it belongs to.
type AuthResult struct {
	Token string
	User  models.User
}

type AuthService struct {
	users    repository.UserRepository
	tokens   *utils.TokenManager
	google   GoogleVerifier
	hashCost int
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager, google GoogleVerifier) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		google:   google,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Accounts created through Google have no password to compare against.
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(*user)
}

// GoogleLogin verifies a Google ID token and signs the user in, creating the
// account on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*AuthResult, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	identity, err := s.google.Verify(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	if identity.Email == "" {
		return nil, ErrGoogleNoEmail
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{
			ID:        "google-" + identity.Subject,
			Email:     identity.Email,
			Name:      identity.Name,
			ViaGoogle: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create google user: %w", err)
		}
		utils.InfoLogger.Printf("New Google user: %s", user.Email)
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	res, err := s.issue(*user)
	if err != nil {
		return nil, err
	}
	res.User.ViaGoogle = true
	return res, nil
}

func (s *AuthService) issue(user models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
