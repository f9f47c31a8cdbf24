package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dalkomstore/shop-backend/internal/address"
	"github.com/dalkomstore/shop-backend/internal/banner"
	"github.com/dalkomstore/shop-backend/internal/cart"
	"github.com/dalkomstore/shop-backend/internal/catalog"
	"github.com/dalkomstore/shop-backend/internal/category"
	"github.com/dalkomstore/shop-backend/internal/config"
	"github.com/dalkomstore/shop-backend/internal/db"
	"github.com/dalkomstore/shop-backend/internal/inquiry"
	"github.com/dalkomstore/shop-backend/internal/logging"
	"github.com/dalkomstore/shop-backend/internal/notice"
	"github.com/dalkomstore/shop-backend/internal/order"
	"github.com/dalkomstore/shop-backend/internal/review"
	"github.com/dalkomstore/shop-backend/internal/stats"
	"github.com/dalkomstore/shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logging.New("shop-backend")
	defer log.Sync()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(conn); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	app := fiber.New()
	setupCORS(app)

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(conn), cfg.JWTSecret))

	catalogService := catalog.NewService(catalog.NewPostgresRepository(conn))
	catalogHandler := catalog.NewHandler(catalogService)

	cartService := cart.NewService(cart.NewPostgresRepository(conn))
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(conn), cartService, log)
	orderHandler := order.NewHandler(orderService)

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(conn)))
	inquiryHandler := inquiry.NewHandler(inquiry.NewService(inquiry.NewPostgresRepository(conn)))
	noticeHandler := notice.NewHandler(notice.NewService(notice.NewPostgresRepository(conn)))
	bannerHandler := banner.NewHandler(banner.NewService(banner.NewPostgresRepository(conn)))
	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(conn)))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(conn)))
	statsHandler := stats.NewHandler(stats.NewPostgresRepository(conn))

	// public surface goes on before the JWT gate
	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	noticeHandler.RegisterPublicRoutes(app)
	bannerHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter:     isPublicRoute,
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterRoutes(app)
	inquiryHandler.RegisterRoutes(app)
	addressHandler.RegisterRoutes(app)

	catalogHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	orderHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	reviewHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	inquiryHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	noticeHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	bannerHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	categoryHandler.RegisterAdminRoutes(app, user.RequireAdmin)
	statsHandler.RegisterAdminRoutes(app, user.RequireAdmin)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// isPublicRoute lets browse traffic through without a token. Everything
// that mutates state, plus all account-scoped reads, stays behind JWT.
func isPublicRoute(c *fiber.Ctx) bool {
	p := c.Path()
	if strings.HasPrefix(p, "/api/v1/auth/signup") || strings.HasPrefix(p, "/api/v1/auth/login") {
		return true
	}
	if c.Method() != fiber.MethodGet {
		return false
	}
	for _, prefix := range []string{
		"/api/v1/products",
		"/api/v1/categories",
		"/api/v1/notices",
		"/api/v1/banners",
	} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
