package customer

import (
	"context"
	"strings"

	"tailorshop/internal/domain"
	custrepo "tailorshop/internal/repository/customer"
)

// Service manages the customer book of one operator account.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries customer fields for create and update.
type Input struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if cc := strings.TrimSpace(in.CountryCode); cc != "" && len(cc) != 2 {
		return &domain.ValidationError{Field: "countryCode", Reason: "must be a two-letter code"}
	}
	return nil
}

// Create adds a customer owned by the acting operator.
func (s *Service) Create(ctx context.Context, operatorID string, in Input) (*domain.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Customer{
		OwnerID:     operatorID,
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(strings.ToLower(in.Email)),
		City:        strings.TrimSpace(in.City),
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
	})
}

// Get fetches one customer owned by the operator.
func (s *Service) Get(ctx context.Context, operatorID, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, operatorID, id)
}

// List returns all customers of the operator in creation order.
func (s *Service) List(ctx context.Context, operatorID string) ([]domain.Customer, error) {
	return s.repo.List(ctx, operatorID)
}

// Update replaces the editable fields of a customer.
func (s *Service) Update(ctx context.Context, operatorID, id string, in Input) (*domain.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Customer{
		ID:          id,
		OwnerID:     operatorID,
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(strings.ToLower(in.Email)),
		City:        strings.TrimSpace(in.City),
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
	})
}

// Delete removes a customer; associated orders cascade at the store.
func (s *Service) Delete(ctx context.Context, operatorID, id string) error {
	return s.repo.Delete(ctx, operatorID, id)
}
