package sellers

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

type repository interface {
	GetByID(ctx context.Context, id string) (Seller, error)
	GetByEmail(ctx context.Context, email string) (Seller, error)
	Create(ctx context.Context, s Seller) (Seller, error)
	UpdateProfile(ctx context.Context, id, email, displayName string, phone *string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Service struct {
	repo repository
}

func NewService(repo repository) *Service { return &Service{repo: repo} }

func (s *Service) Register(ctx context.Context, email, password, displayName string) (Seller, error) {
	email = normalizeEmail(email)
	if len(password) < 8 {
		return Seller{}, apperr.InvalidErr("Please correct the highlighted fields.",
			map[string]string{"password": "Password must be at least 8 characters."})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Seller{}, apperr.Wrap(err)
	}

	created, err := s.repo.Create(ctx, Seller{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	})
	if IsDuplicateKey(err) {
		return Seller{}, apperr.ConflictErr("An account with this email already exists.")
	}
	if err != nil {
		return Seller{}, apperr.Wrap(err)
	}
	return created, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Seller, error) {
	seller, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Same message as a bad password: don't leak which accounts exist.
		return Seller{}, apperr.UnauthorizedErr("Email or password is incorrect.")
	}
	if err != nil {
		return Seller{}, apperr.Wrap(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(password)) != nil {
		return Seller{}, apperr.UnauthorizedErr("Email or password is incorrect.")
	}
	return seller, nil
}

func (s *Service) Get(ctx context.Context, id string) (Seller, error) {
	seller, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Seller{}, apperr.NotFoundErr("Account not found.")
	}
	if err != nil {
		return Seller{}, apperr.Wrap(err)
	}
	return seller, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id, email, displayName string, phone *string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperr.InvalidErr("Please correct the highlighted fields.",
			map[string]string{"email": "Email is required."})
	}
	err := s.repo.UpdateProfile(ctx, id, email, strings.TrimSpace(displayName), phone)
	if IsDuplicateKey(err) {
		return apperr.ConflictErr("An account with this email already exists.")
	}
	if err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	seller, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(current)) != nil {
		return apperr.UnauthorizedErr("Current password is incorrect.")
	}
	if len(next) < 8 {
		return apperr.InvalidErr("Please correct the highlighted fields.",
			map[string]string{"new_password": "Password must be at least 8 characters."})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
