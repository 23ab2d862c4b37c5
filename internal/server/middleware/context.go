package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/nyayarakshak/backend/pkg/ai"
	"github.com/nyayarakshak/backend/pkg/alerts"
	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/geo"
)

// App bundles the shared service dependencies handlers reach through
// the request context.
type App struct {
	DBConn      *pgxpool.Pool
	Queue       *amqp091.Channel
	S3          *s3.Client
	Store       casegraph.GraphStorage
	Pipeline    *casegraph.Pipeline
	Geocoder    geo.Geocoder
	AiClient    ai.MessageClient
	SMS         alerts.Sender
	DetectorURL string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
