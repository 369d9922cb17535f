package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spotapi/docs"
	"spotapi/internal/app"
	"spotapi/internal/config"
	handlers "spotapi/internal/http/handler"
	"spotapi/internal/http/middleware"
	"spotapi/internal/logging"
	"spotapi/internal/otel"
)

// maxUploadBytes caps the multipart body of POST /spots.
const maxUploadBytes = 16 << 20

// @title Tourist Spot API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location()).With("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("tracing init failed", err, nil)
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", err, nil)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	spots, err := app.New(ctx, cfg, log, reg)
	if err != nil {
		log.Error("startup failed", err, map[string]any{"backend": cfg.Backend, "storage": cfg.Storage.Backend})
		os.Exit(1)
	}
	defer spots.Close()

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("failed to register http metrics", err, nil)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    maxUploadBytes,
	})

	server.Use(otelfiber.Middleware())
	server.Use(middleware.RequestID())
	server.Use(middleware.LoggerWithWriter(os.Stdout, cfg.Location()))
	server.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(server, spots.Repo, spots.Service)

	server.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	server.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("server shutdown failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", map[string]any{"addr": addr, "backend": cfg.Backend, "storage": cfg.Storage.Backend})

	if err := server.Listen(addr); err != nil {
		log.Error("failed to start server", err, nil)
		os.Exit(1)
	}
}
