package products

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/internal/shared/slug"
)

type repository interface {
	ListBySeller(ctx context.Context, sellerID string) ([]Product, error)
	Get(ctx context.Context, sellerID, id string) (Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, sellerID, id string, fields map[string]any) error
	UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error
	DeleteProduct(ctx context.Context, sellerID, id string) error
	SetImage(ctx context.Context, sellerID, id, key, url string) error
}

type Service struct {
	repo repository
}

func NewService(repo repository) *Service { return &Service{repo: repo} }

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Attributes  map[string]string
}

func (s *Service) List(ctx context.Context, sellerID string) ([]Product, error) {
	items, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, sellerID, id string) (Product, error) {
	p, err := s.repo.Get(ctx, sellerID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return Product{}, apperr.Wrap(err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, sellerID string, in ProductInput) (Product, error) {
	if err := validateInput(in); err != nil {
		return Product{}, err
	}

	attrs, err := marshalAttributes(in.Attributes)
	if err != nil {
		return Product{}, apperr.Wrap(err)
	}

	p := Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.FromName(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Currency:    currencyOr(in.Currency),
		Status:      StatusAvailable,
		Attributes:  datatypes.JSON(attrs),
	}

	created, err := s.repo.CreateProduct(ctx, p)
	if IsDuplicateKey(err) {
		// Slug collision: retry once with a random suffix.
		p.Slug = p.Slug + "-" + uuid.NewString()[:8]
		created, err = s.repo.CreateProduct(ctx, p)
	}
	if err != nil {
		return Product{}, apperr.Wrap(err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, sellerID, id string, in ProductInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	fields := map[string]any{
		"name":        strings.TrimSpace(in.Name),
		"description": strings.TrimSpace(in.Description),
		"price_cents": in.PriceCents,
		"currency":    currencyOr(in.Currency),
	}
	if in.Attributes != nil {
		attrs, err := marshalAttributes(in.Attributes)
		if err != nil {
			return apperr.Wrap(err)
		}
		fields["attributes"] = datatypes.JSON(attrs)
	}

	err := s.repo.UpdateProduct(ctx, sellerID, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, sellerID, id string) error {
	err := s.repo.DeleteProduct(ctx, sellerID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) SetImage(ctx context.Context, sellerID, id, key, url string) error {
	err := s.repo.SetImage(ctx, sellerID, id, key, url)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// UpdateStatus is the persistence leg of the status toggle. Not-found maps
// to a user-reportable message so a concurrently deleted product, or one
// the seller does not own, surfaces as a normal failure.
func (s *Service) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	err := s.repo.UpdateStatus(ctx, sellerID, id, sold, soldAt)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr("This product no longer exists.")
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func validateInput(in ProductInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required."
	}
	if in.PriceCents <= 0 {
		fields["price"] = "Price must be greater than zero."
	}
	if len(fields) > 0 {
		return apperr.InvalidErr("Please correct the highlighted fields.", fields)
	}
	return nil
}

func marshalAttributes(attrs map[string]string) ([]byte, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	return json.Marshal(attrs)
}

func currencyOr(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "KES"
	}
	return c
}
