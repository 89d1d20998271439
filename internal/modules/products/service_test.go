package products

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

type fakeRepo struct {
	created       []Product
	createErrs    []error // popped per CreateProduct call
	updateErr     error
	statusErr     error
	statusSellers []string
	deleted       []string
}

func (f *fakeRepo) ListBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	return nil, nil
}

func (f *fakeRepo) Get(ctx context.Context, sellerID, id string) (Product, error) {
	return Product{}, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return Product{}, err
		}
	}
	p.ID = "generated"
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, sellerID, id string, fields map[string]any) error {
	return f.updateErr
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	f.statusSellers = append(f.statusSellers, sellerID)
	return f.statusErr
}

func (f *fakeRepo) DeleteProduct(ctx context.Context, sellerID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) SetImage(ctx context.Context, sellerID, id, key, url string) error {
	return nil
}

func TestServiceCreateSlugifiesName(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "seller-1", ProductInput{
		Name:       "  Kitenge Tote Bag! ",
		PriceCents: 180000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Slug != "kitenge-tote-bag" {
		t.Fatalf("unexpected slug: %q", p.Slug)
	}
	if p.Name != "Kitenge Tote Bag!" {
		t.Fatalf("name should be trimmed, got %q", p.Name)
	}
	if p.Currency != "KES" {
		t.Fatalf("expected default currency, got %q", p.Currency)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), "seller-1", ProductInput{Name: "", PriceCents: 0})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.Invalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
	if ae.Fields["name"] == "" || ae.Fields["price"] == "" {
		t.Fatalf("expected field errors, got %+v", ae.Fields)
	}
}

func TestServiceCreateRetriesSlugOnDuplicate(t *testing.T) {
	repo := &fakeRepo{createErrs: []error{&mysql.MySQLError{Number: 1062}}}
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "seller-1", ProductInput{
		Name:       "Leather Satchel",
		PriceCents: 450000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(p.Slug, "leather-satchel-") || len(p.Slug) != len("leather-satchel-")+8 {
		t.Fatalf("expected suffixed slug after collision, got %q", p.Slug)
	}
}

func TestServiceUpdateStatusNotFound(t *testing.T) {
	repo := &fakeRepo{statusErr: gorm.ErrRecordNotFound}
	svc := NewService(repo)

	err := svc.UpdateStatus(context.Background(), "seller-1", "gone", true, nil)
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.NotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	if ae.PublicMsg == "" {
		t.Fatalf("not-found from a concurrent delete must carry a user message")
	}
	if len(repo.statusSellers) != 1 || repo.statusSellers[0] != "seller-1" {
		t.Fatalf("status update must be scoped to the seller, got %v", repo.statusSellers)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Get(context.Background(), "seller-1", "missing")
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.NotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
