package products

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, sellerID, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		First(&p, "id = ? AND seller_id = ?", id, sellerID).Error
	return p, err
}

func (r *Repo) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) UpdateProduct(ctx context.Context, sellerID, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus persists a sold/available flip. It is the persistence
// endpoint of the status toggle and is idempotent on {status, sold_at}.
// Scoped by seller like every other write; a foreign product id reads as
// not-found.
func (r *Repo) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Updates(map[string]any{
			"status":     statusFor(sold),
			"sold_at":    soldAt,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "row unchanged" from "row gone": an idempotent
		// re-apply must not read as a concurrent delete.
		var n int64
		if err := r.db.WithContext(ctx).Model(&Product{}).
			Where("id = ? AND seller_id = ?", id, sellerID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, sellerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) SetImage(ctx context.Context, sellerID, id, key, url string) error {
	return r.UpdateProduct(ctx, sellerID, id, map[string]any{
		"image_key": key,
		"image_url": url,
	})
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
