package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/logging"
)

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type AlertService interface {
	Run(ctx context.Context) (domain.AlertResult, error)
}

// Deps are the collaborators the handlers delegate to.
type Deps struct {
	ProductSvc ProductService
	AlertSvc   AlertService
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil {
		return nil, errors.New("product service is required")
	}
	if deps.AlertSvc == nil {
		return nil, errors.New("alert service is required")
	}
	logger = logging.OrNop(logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		requestIDMiddleware(),
		requestLogger(logger),
		recoveryMiddleware(logger),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders:   []string{requestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	products := &productHandler{svc: deps.ProductSvc, logger: logger}
	router.GET("/produtos", products.list)
	router.POST("/produtos", products.create)
	router.PUT("/produtos/:id", products.update)
	router.DELETE("/produtos/:id", products.delete)

	alerts := &alertHandler{svc: deps.AlertSvc, logger: logger}
	router.GET("/send-alerts", alertGuard(logger), alerts.send)

	return router, nil
}
