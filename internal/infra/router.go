package infra

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/contacts/docs" // registers swagger docs
	"github.com/umalmyha/contacts/internal/config"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/handlers"
	"github.com/umalmyha/contacts/internal/middleware"
	"github.com/umalmyha/contacts/internal/service"
	"github.com/umalmyha/contacts/internal/validation"
)

// InternalErrorMsg is message returned for any unexpected failure
const InternalErrorMsg = "Internal server error"

type errorBody struct {
	Error string `json:"error"`
}

// RouterDeps holds services exposed over http
type RouterDeps struct {
	ContactSvc service.ContactService
	HealthSvc  service.HealthService
	Metrics    *metrics.Set
}

// Router builds echo application with all contacts routes registered
func Router(cfg config.HTTPCfg, logger logrus.FieldLogger, deps RouterDeps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v, err := validation.NewEnglish()
	if err != nil {
		return nil, fmt.Errorf("failed to build validator - %w", err)
	}
	e.Validator = v
	e.HTTPErrorHandler = HTTPErrorHandler(logger)

	// Middleware
	e.Use(echoMw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.MeterRequests(deps.Metrics))
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Handlers
	contactHandler := handlers.NewContactHTTPHandler(deps.ContactSvc)
	healthHandler := handlers.NewHealthHTTPHandler(deps.HealthSvc)

	// API routes
	api := e.Group("/api")

	// contacts
	contactsAPI := api.Group("/contacts")
	contactsAPI.GET("", contactHandler.GetAll)
	contactsAPI.GET("/:id", contactHandler.Get)
	contactsAPI.POST("", contactHandler.Post)
	contactsAPI.PUT("/:id", contactHandler.Put)
	contactsAPI.DELETE("/:id", contactHandler.DeleteByID)

	// health
	health := e.Group("/health")
	health.GET("/liveness", healthHandler.Liveness)
	health.GET("/readiness", healthHandler.Readiness)

	// operational
	e.GET("/metrics", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4")
		deps.Metrics.WritePrometheus(c.Response())
		metrics.WriteProcessMetrics(c.Response())
		return nil
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// HTTPErrorHandler writes errors as json body, causes of server errors are only logged
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := errorResponse(err)
		if code >= http.StatusInternalServerError {
			logger.Errorf("failed to process %s %s - %v", c.Request().Method, c.Request().URL.Path, err)
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(code)
		} else {
			respErr = c.JSON(code, body)
		}

		if respErr != nil {
			logger.Errorf("failed to write error response - %v", respErr)
		}
	}
}

func errorResponse(err error) (int, any) {
	var payloadErr *validation.PayloadError
	var duplicateErr *apperrors.DuplicateEmailErr
	var notFoundErr *apperrors.EntryNotFoundErr
	var unavailableErr *apperrors.StoreUnavailableErr
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &payloadErr):
		return http.StatusBadRequest, payloadErr
	case errors.As(err, &duplicateErr):
		return http.StatusBadRequest, duplicateErr
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr
	case errors.As(err, &unavailableErr):
		return http.StatusInternalServerError, unavailableErr
	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusInternalServerError {
			return httpErr.Code, &errorBody{Error: InternalErrorMsg}
		}
		return httpErr.Code, &errorBody{Error: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, &errorBody{Error: InternalErrorMsg}
	}
}
