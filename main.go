package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citybuddy/config"
	"citybuddy/events"
	"citybuddy/gemini"
	"citybuddy/geocode"
	"citybuddy/handlers"
	"citybuddy/llm"
	"citybuddy/mailer"
	"citybuddy/metrics"
	"citybuddy/models"
	"citybuddy/openai"
	"citybuddy/orchestrator"
	"citybuddy/rabbitmq"
	"citybuddy/roster"
	"citybuddy/store"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}

	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	metrics.Register()

	client, err := buildLLMClient(cfg)
	if err != nil {
		log.Fatalf("failed to configure LLM client: %v", err)
	}
	log.Infof("using %s for analysis and generation", client.SourceName())

	rosters, err := roster.LoadSet(cfg)
	if err != nil {
		log.Fatalf("failed to load official rosters: %v", err)
	}

	var eventsSearcher orchestrator.EventsSearcher
	eventsPath := filepath.Join(cfg.DataDir, cfg.EventsFile)
	if svc, err := events.Load(eventsPath, cfg.EventsDaysAhead); err != nil {
		log.Warnf("events search disabled, could not load %s: %v", eventsPath, err)
	} else {
		eventsSearcher = svc
	}

	geocoder := geocode.NewClient(cfg.NominatimBaseURL, cfg.GeocodeTimeout)

	st, err := store.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if st != nil {
		defer st.Close()
		if err := st.CreateReportsTable(); err != nil {
			log.Fatalf("failed to prepare database: %v", err)
		}
	} else {
		log.Info("no database configured, reports will not be persisted")
	}

	var publisher *rabbitmq.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			log.Warnf("continuing without RabbitMQ publishing: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	ml := mailer.New(cfg)
	if ml == nil {
		log.Info("no SendGrid key configured, drafted emails are returned but not sent")
	}

	orch := orchestrator.New(client, rosters, geocoder, eventsSearcher)
	h := handlers.NewHandlers(orch, st, publisher, ml, cfg.MaxUploadBytes)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("starting citybuddy service on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("server exited")
}

// buildLLMClient picks the provider from configuration and checks that its
// API key is present before the first request needs it.
func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v3")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/analyze", h.Analyze)
		api.POST("/chat", h.Chat)
		api.POST("/report/trash", h.ReportCategory(models.CategoryTrash))
		api.POST("/report/pothole", h.ReportCategory(models.CategoryPothole))
		api.POST("/report/electricity", h.ReportCategory(models.CategoryElectricity))
		api.GET("/report/:id", h.GetReport)
	}

	return router
}
