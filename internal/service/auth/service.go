package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"tailorshop/internal/domain"
	operatorrepo "tailorshop/internal/repository/operator"
	tokenrepo "tailorshop/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles operator signup/login and session lookups. It is the
// identity side of the ownership checks performed by the domain services.
type Service struct {
	repo        operatorrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo operatorrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ShopName string `json:"shopName"`
}

// Signup registers a new operator account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Operator, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "valid email required"}
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, &domain.ValidationError{Field: "password", Reason: "too short"}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.Operator{
		Email:        email,
		PasswordHash: string(hashed),
		ShopName:     strings.TrimSpace(in.ShopName),
	})
}

// Login validates credentials and returns issued tokens plus the operator.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Operator, string, string, error) {
	op, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, op.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, op.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return op, access, refresh, nil
}

// LookupByToken returns the operator bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Operator, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	op, err := s.repo.GetByID(ctx, meta.OperatorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return op, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
