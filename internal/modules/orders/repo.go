package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListBySellerParams struct {
	SellerID string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListBySellerResult struct {
	Items []Order
	Total int64
}

func (r *Repo) ListBySeller(ctx context.Context, in ListBySellerParams) (ListBySellerResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	status := strings.TrimSpace(in.Status)

	q := r.db.WithContext(ctx).Model(&Order{}).Where("seller_id = ?", in.SellerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListBySellerResult{}, err
	}

	var items []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListBySellerResult{}, err
	}

	return ListBySellerResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, sellerID, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ? AND seller_id = ?", id, sellerID).Error
	return o, err
}
