package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/handlers"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/orders"
	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/internal/modules/sellers"
	"github.com/Mwvndva/byblos/internal/storage"
)

// NewRouter wires middleware, modules, and routes into a gin engine.
func NewRouter(logger *slog.Logger, db *gorm.DB, store storage.Storage) *gin.Engine {
	secure := os.Getenv("COOKIE_SECURE") == "1"

	flashCodec := flash.NewCodec(secretFromEnv("FLASH_SECRET"), "byblos_flash", secure)
	sessionCfg := middleware.SessionCfg{
		DB:         db,
		CookieName: "byblos_session",
		Secure:     secure,
		TTL:        30 * 24 * time.Hour,
	}

	productSvc := products.NewService(products.NewRepo(db))
	sellerSvc := sellers.NewService(sellers.NewRepo(db))
	orderRepo := orders.NewRepo(db)
	workspaces := products.NewWorkspaces(productSvc, logger, 2*time.Second)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
		middleware.FlashMiddleware(flashCodec),
		middleware.CSRF(secure),
		middleware.SessionMiddleware(sessionCfg),
	)

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/uploads", envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"))

	login := handlers.NewLoginHandler(sellerSvc, sessionCfg, flashCodec)
	register := handlers.NewRegisterHandler(sellerSvc, sessionCfg, flashCodec)
	logout := handlers.NewLogoutHandler(sessionCfg, workspaces, flashCodec)
	dashboard := handlers.NewDashboardHandler(productSvc, workspaces)
	productH := handlers.NewProductsHandler(productSvc, store, workspaces, flashCodec)
	statusH := handlers.NewStatusHandler(productSvc, workspaces, flashCodec)
	ordersH := handlers.NewOrdersHandler(orderRepo)
	settings := handlers.NewSettingsHandler(sellerSvc, flashCodec)

	r.GET("/", func(c *gin.Context) { c.Redirect(302, "/dashboard") })
	r.NoRoute(func(c *gin.Context) {
		render.ErrorPage(c, 404, "The page you were looking for does not exist.", middleware.GetRequestID(c))
	})
	r.GET("/login", login.Get)
	r.POST("/login", login.Post)
	r.GET("/register", register.Get)
	r.POST("/register", register.Post)
	r.POST("/logout", logout.Post)

	auth := r.Group("/dashboard", middleware.RequireAuth())
	{
		auth.GET("", dashboard.Get)

		auth.GET("/products/new", productH.New)
		auth.POST("/products", productH.Create)
		auth.GET("/products/:id/edit", productH.Edit)
		auth.POST("/products/:id", productH.Update)
		auth.POST("/products/:id/delete", productH.Delete)

		auth.POST("/products/:id/status", statusH.Request)
		auth.GET("/status/confirm", statusH.ConfirmPage)
		auth.POST("/status/confirm", statusH.Confirm)
		auth.POST("/status/cancel", statusH.Cancel)
		auth.POST("/products/:id/status/undo", statusH.Undo)

		auth.GET("/orders", ordersH.List)
		auth.GET("/orders/:id", ordersH.Show)

		auth.GET("/settings", settings.Get)
		auth.POST("/settings/profile", settings.UpdateProfile)
		auth.POST("/settings/password", settings.ChangePassword)
	}

	return r
}

func secretFromEnv(key string) []byte {
	if v := os.Getenv(key); v != "" {
		return []byte(v)
	}
	// Dev fallback; production sets a real secret.
	return []byte("byblos-dev-secret-change-me")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
