package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/cart"
	"github.com/levelup-gaming/levelup-api/catalog"
	"github.com/levelup-gaming/levelup-api/controllers"
	"github.com/levelup-gaming/levelup-api/initializers"
	"github.com/levelup-gaming/levelup-api/routes"
	"github.com/sirupsen/logrus"
)

func main() {
	initializers.LoadEnv()

	db, err := initializers.ConnectToDB()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		logrus.Fatalf("Database migration failed: %v", err)
	}

	var productCache *catalog.Cache
	if rdb := initializers.ConnectToRedis(); rdb != nil {
		productCache = catalog.NewCache(rdb, cacheTTL())
	}

	var remote catalog.Remote
	if baseURL := os.Getenv("CATALOG_API_URL"); baseURL != "" {
		remote = catalog.NewClient(baseURL)
	} else {
		logrus.Info("CATALOG_API_URL not set, serving the local catalog only.")
	}

	catalogRepo := catalog.NewRepository(db, remote, productCache)
	if initializers.GetEnv("DEMO_PRODUCTS", "false") == "true" {
		if err := catalogRepo.Seed(context.Background()); err != nil {
			logrus.Warnf("Seeding demo products failed: %v", err)
		}
	}

	cartRepo := cart.NewRepository(cart.NewGormStore(db))
	gateway := cart.SimulatedGateway{Delay: paymentDelay()}
	orderController := controllers.NewOrderController(db)

	authController := controllers.NewAuthController(db)
	productController := controllers.NewProductController(db, catalogRepo)
	cartController := controllers.NewCartController(cartRepo, catalogRepo, gateway, orderController, paymentMethods())
	adminController := controllers.NewAdminController(db)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(initializers.GetEnv("CORS_ORIGINS", "http://localhost:4200"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, authController)
	routes.ProductRoutes(server, productController)
	routes.CartRoutes(server, cartController)
	routes.OrderRoutes(server, orderController)
	routes.AdminRoutes(server, adminController)

	if err := server.Run(); err != nil {
		logrus.Fatal(err)
	}
}

func paymentMethods() []string {
	raw := os.Getenv("PAYMENT_METHODS")
	if raw == "" {
		return nil // Checkout falls back to the default label set.
	}
	return strings.Split(raw, ",")
}

func paymentDelay() time.Duration {
	ms, err := strconv.Atoi(initializers.GetEnv("PAYMENT_DELAY_MS", "2000"))
	if err != nil || ms < 0 {
		ms = 2000
	}
	return time.Duration(ms) * time.Millisecond
}

func cacheTTL() time.Duration {
	seconds, err := strconv.Atoi(initializers.GetEnv("CATALOG_CACHE_TTL_SECONDS", "300"))
	if err != nil || seconds <= 0 {
		seconds = 300
	}
	return time.Duration(seconds) * time.Second
}
