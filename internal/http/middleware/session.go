package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCfg holds configuration for session middleware.
type SessionCfg struct {
	DB         *gorm.DB
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session is a database-backed session model.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	SellerID   string    `gorm:"type:char(36);not null;index:ix_sessions_seller_id"`
	ExpiresAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

const (
	ctxKeySession  = "session"
	ctxKeySellerID = "seller_id"
)

// SessionMiddleware loads the session from the database and puts the seller
// identity in the request context. Schema comes from cmd/tools/createtable,
// not AutoMigrate.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		var sess Session
		if err := cfg.DB.Where("id = ? AND expires_at > ?", sessionID, time.Now()).First(&sess).Error; err != nil {
			// Invalid or expired session, clear cookie
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		c.Set(ctxKeySession, &sess)
		c.Set(ctxKeySellerID, sess.SellerID)

		var email, displayName string
		row := cfg.DB.Table("sellers").Select("email", "display_name").Where("id = ?", sess.SellerID).Row()
		if err := row.Scan(&email, &displayName); err == nil {
			c.Set("seller_email", email)
			c.Set("seller_display_name", displayName)
		}

		c.Next()
	}
}

// CreateSession creates a new session for the given seller.
func CreateSession(cfg SessionCfg, sellerID string) (*Session, error) {
	sess := &Session{
		ID:         uuid.NewString(),
		SellerID:   sellerID,
		ExpiresAt:  time.Now().Add(cfg.TTL),
		CreatedAt:  time.Now(),
		LastSeenAt: time.Now(),
	}
	if err := cfg.DB.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session by ID.
func DeleteSession(cfg SessionCfg, sessionID string) error {
	return cfg.DB.Delete(&Session{}, "id = ?", sessionID).Error
}

// ContextSeller is the authenticated seller stored in request context.
type ContextSeller struct {
	ID          string
	Email       string
	DisplayName string
}

// CurrentSeller retrieves the authenticated seller from the gin context.
func CurrentSeller(c *gin.Context) (ContextSeller, bool) {
	idVal, exists := c.Get(ctxKeySellerID)
	if !exists {
		return ContextSeller{}, false
	}
	id, ok := idVal.(string)
	if !ok || id == "" {
		return ContextSeller{}, false
	}
	return ContextSeller{
		ID:          id,
		Email:       c.GetString("seller_email"),
		DisplayName: c.GetString("seller_display_name"),
	}, true
}

// SessionID returns the active session's ID, or "" when anonymous.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*Session); ok {
			return s.ID
		}
	}
	return ""
}
