package main

import (
	"context"
	"log"
	"time"

	"techstore/internal/config"
	httpctrl "techstore/internal/controllers/http"
	"techstore/internal/infra/imagestore"
	"techstore/internal/infra/mail"
	"techstore/internal/infra/paygate"
	pg "techstore/internal/infra/postgres"
	"techstore/internal/infra/rabbitmq"
	pgrepo "techstore/internal/repository/postgres"
	"techstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := pg.New(pg.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db: pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := pgrepo.NewOrderRepository(db)
	productRepo := pgrepo.NewProductRepository(db)
	categoryRepo := pgrepo.NewCategoryRepository(db)
	adminRepo := pgrepo.NewAdminRepository(db)

	var publisher rabbitmq.PublisherInterface
	if cfg.AMQPURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	imageClient := imagestore.NewClient(cfg.ImageStoreURL, 10*time.Second)
	paymentClient := paygate.NewClient(cfg.PaymentGatewayURL, cfg.PaymentGatewayToken, 15*time.Second)

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	}

	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	orderService.SetFreeStatusTransitions(cfg.FreeStatusTransitions)
	productService := services.NewProductService(productRepo, categoryRepo, imageClient)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	authService := services.NewAuthService(adminRepo, []byte(cfg.JWTSecret))
	paymentService := services.NewPaymentService(orderRepo, paymentClient, mailer, publisher)

	ctx := context.Background()

	if cfg.SeedOnBoot {
		if err := services.Seed(ctx, adminRepo, categoryRepo, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost + ":" + cfg.RedisPort,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	if cfg.PaymentWindow > 0 {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				if n, err := orderService.ExpireStalePendingOrders(ctx, cfg.PaymentWindow); err != nil {
					log.Printf("expiry sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("expiry sweep cancelled %d stale orders", n)
				}
			}
		}()
	}

	handlers := httpctrl.Handlers{
		Orders:     httpctrl.NewOrderHandler(orderService),
		Products:   httpctrl.NewProductHandler(productService, redisClient),
		Categories: httpctrl.NewCategoryHandler(categoryService, redisClient),
		Auth:       httpctrl.NewAuthHandler(authService),
		Payments:   httpctrl.NewPaymentHandler(paymentService),
	}

	go func() {
		time.Sleep(5 * time.Second)
		if err := handlers.Categories.WarmupCache(ctx); err != nil {
			log.Printf("Failed to warm up category cache: %v", err)
		} else {
			log.Println("Category cache warmed up")
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	httpctrl.RegisterRoutes(r, handlers, authService)

	log.Printf("Starting storefront API on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
