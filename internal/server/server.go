package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyayarakshak/backend/internal/queue"
	mid "github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/internal/storage"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/ai"
	oai "github.com/nyayarakshak/backend/pkg/ai/ollama"
	gai "github.com/nyayarakshak/backend/pkg/ai/openai"
	"github.com/nyayarakshak/backend/pkg/alerts"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/geo"
	"github.com/nyayarakshak/backend/pkg/logger"
	memstore "github.com/nyayarakshak/backend/pkg/store/memory"
	pgxstore "github.com/nyayarakshak/backend/pkg/store/pgx"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	var store casegraph.GraphStorage
	switch util.GetEnvString("GRAPH_STORE", "postgres") {
	case "memory":
		store = memstore.New()
	default:
		store = pgxstore.New(conn)
	}

	geocoder := geo.NewNominatimClient(geo.NewNominatimClientParams{
		BaseURL: util.GetEnv("GEOCODER_URL"),
		City:    util.GetEnvString("GEOCODER_CITY", "Mumbai"),
	})

	app := &mid.App{
		DBConn:      conn,
		Queue:       ch,
		S3:          s3,
		Store:       store,
		Pipeline:    casegraph.NewPipeline(store),
		Geocoder:    geocoder,
		AiClient:    newMessageClient(),
		SMS:         alerts.NewFast2SMSClient(alerts.NewFast2SMSClientParams{ApiKey: util.GetEnv("FAST2SMS_API_KEY")}),
		DetectorURL: util.GetEnv("DETECTOR_URL"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("512M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal("Failed to prepare migrations", "err", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

// newMessageClient builds the alert-message backend from the
// environment. Any provider speaking the OpenAI chat protocol works by
// pointing AI_CHAT_URL at it.
func newMessageClient() ai.MessageClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewMessageOllamaClient(oai.NewMessageOllamaClientParams{
			Model:   util.GetEnv("AI_CHAT_MODEL"),
			BaseURL: util.GetEnv("AI_CHAT_URL"),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewMessageOpenAIClient(gai.NewMessageOpenAIClientParams{
			Model:   util.GetEnv("AI_CHAT_MODEL"),
			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),
		})
	}
}
