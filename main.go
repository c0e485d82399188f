package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bounty-board-system/handlers"
	"bounty-board-system/middleware"
	"bounty-board-system/models"
	"bounty-board-system/services"
	"bounty-board-system/utils"
	"bounty-board-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // 32MB — proof attachments
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Agent-Address, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Durable backing is optional: without DATABASE_URL the service runs
	// memory-only and the claim protocol degrades to its in-process fallback.
	var db *gorm.DB
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := db.AutoMigrate(
			&models.Bounty{},
			&models.Agent{},
			&models.BlockedAgent{},
		); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	store := services.NewBountyStore(db)

	// Cold load must settle before any request is served.
	if err := store.Load(); err != nil {
		log.Printf("⚠️  Continuing with degraded cache: %v", err)
	}
	app.Use(middleware.ReadinessGate(store.IsReady))

	var payments *services.PaymentClient
	if paymentURL := os.Getenv("PAYMENT_SERVICE_URL"); paymentURL != "" {
		payments = services.NewPaymentClient(paymentURL, os.Getenv("PAYMENT_SERVICE_TOKEN"))
	} else {
		log.Println("⚠️  PAYMENT_SERVICE_URL not set — approvals will park in payment_pending")
	}

	var agentClient *services.AgentServiceClient
	if agentURL := os.Getenv("AGENT_SERVICE_URL"); agentURL != "" {
		agentClient = services.NewAgentServiceClient(agentURL, os.Getenv("AGENT_SERVICE_TOKEN"))
	}

	var sinks []string
	if sinksEnv := os.Getenv("NOTIFY_SINKS"); sinksEnv != "" {
		for _, s := range strings.Split(sinksEnv, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sinks = append(sinks, s)
			}
		}
	}

	notifier := services.NewNotifier(sinks, agentClient)
	limiter := services.NewRateLimiter()
	bountyService := services.NewBountyService(store, db, limiter, payments, notifier)
	agentService := services.NewAgentService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go notifier.Run(ctx)

	stopSweep, err := limiter.StartEvictionSweep()
	if err != nil {
		log.Fatal("failed to start rate limit eviction sweep:", err)
	}

	if payments != nil {
		relay := workers.NewPaymentRelay(store, payments, bountyService)
		go workers.PollPendingPayments(ctx, relay, 30*time.Second)
	}

	handlers.SetupBountyRoutes(app, bountyService)
	handlers.SetupAgentRoutes(app, agentService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ready": store.IsReady()})
	})

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Rate limit eviction sweep running")
	log.Printf("✅ Outbound notifier running with %d sink(s)", len(sinks))
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := stopSweep(); err != nil {
		log.Printf("⚠️  Rate limit eviction sweep shutdown: %v", err)
	}
}
