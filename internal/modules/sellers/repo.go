package sellers

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

func (r *Repo) GetByID(ctx context.Context, id string) (Seller, error) {
	var s Seller
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return s, err
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (Seller, error) {
	var s Seller
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	return s, err
}

func (r *Repo) Create(ctx context.Context, s Seller) (Seller, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return Seller{}, err
	}
	return s, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, id, email, displayName string, phone *string) error {
	return r.db.WithContext(ctx).Model(&Seller{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"email":        email,
			"display_name": displayName,
			"phone":        phone,
			"updated_at":   time.Now(),
		}).Error
}

func (r *Repo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&Seller{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
