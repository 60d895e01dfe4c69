package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the caller identity when the request body omits it.
const ActorHeader = "X-Actor"

type (
	CreateComponentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateComponentCommand) error
	}

	ChangeComponentStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeComponentStatusCommand) (services.StatusChange, error)
	}

	AssignTreatmentsHandler interface {
		Handle(ctx context.Context, cmd commands.AssignTreatmentsCommand) (*component.Component, error)
	}

	GetComponentHandler interface {
		Handle(ctx context.Context, query queries.GetComponentQuery) (*queries.GetComponentQueryResponse, error)
	}

	GetWorkOrderComponentsHandler interface {
		Handle(ctx context.Context, query queries.GetWorkOrderComponentsQuery) ([]queries.ComponentSummary, error)
	}
)

// Server handles HTTP requests by turning them into commands and queries.
type Server struct {
	// Command handlers
	createComponentHandler CreateComponentHandler
	changeStatusHandler    ChangeComponentStatusHandler
	assignHandler          AssignTreatmentsHandler

	// Query handlers
	getComponentHandler GetComponentHandler
	workOrderHandler    GetWorkOrderComponentsHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createComponentHandler CreateComponentHandler,
	changeStatusHandler ChangeComponentStatusHandler,
	assignHandler AssignTreatmentsHandler,
	getComponentHandler GetComponentHandler,
	workOrderHandler GetWorkOrderComponentsHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createComponentHandler: createComponentHandler,
		changeStatusHandler:    changeStatusHandler,
		assignHandler:          assignHandler,
		getComponentHandler:    getComponentHandler,
		workOrderHandler:       workOrderHandler,
		logger:                 logger.With("component", "http_server"),
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/components", s.CreateComponent)
	api.GET("/components/:id", s.GetComponent)
	api.POST("/components/:id/status", s.ChangeStatus)
	api.PUT("/components/:id/treatments", s.AssignTreatments)
	api.GET("/work-orders/:code/components", s.GetWorkOrderComponents)
}

// CreateComponent handles POST /api/v1/components.
func (s *Server) CreateComponent(ctx echo.Context) error {
	var body NewComponent
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		parsed, err := kernel.UUIDFromBytes(body.ID[:])
		if err != nil {
			return badRequest(ctx, "Invalid component id")
		}
		id = parsed
	}

	cmd, err := commands.NewCreateComponentCommand(id, body.Code, body.WorkOrder, body.Treatments)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.createComponentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/components/"+id.String())
	return ctx.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// GetComponent handles GET /api/v1/components/:id.
func (s *Server) GetComponent(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid component id")
	}

	query, err := queries.NewGetComponentQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.getComponentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, componentFromQuery(result))
}

// ChangeStatus handles POST /api/v1/components/:id/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid component id")
	}

	var body StatusChangeRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor := strings.TrimSpace(body.Actor)
	if actor == "" {
		actor = strings.TrimSpace(ctx.Request().Header.Get(ActorHeader))
	}

	var doc *component.Document
	if body.Document != nil {
		date, err := parseDocumentDate(body.Document.Date)
		if err != nil {
			return badRequest(ctx, "Invalid document date")
		}
		built, err := component.NewDocument(body.Document.Number, date)
		if err != nil {
			return s.fail(ctx, err)
		}
		doc = &built
	}

	cmd, err := commands.NewChangeComponentStatusCommand(id, status.Parse(strings.TrimSpace(body.Status)), actor, body.Note, doc)
	if err != nil {
		return s.fail(ctx, err)
	}

	change, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusChangeOf(change))
}

// AssignTreatments handles PUT /api/v1/components/:id/treatments.
func (s *Server) AssignTreatments(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid component id")
	}

	var body TreatmentsRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignTreatmentsCommand(id, body.Treatments)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.assignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, componentOf(updated))
}

// GetWorkOrderComponents handles GET /api/v1/work-orders/:code/components.
func (s *Server) GetWorkOrderComponents(ctx echo.Context) error {
	query, err := queries.NewGetWorkOrderComponentsQuery(ctx.Param("code"))
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.workOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesOf(items))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func (s *Server) fail(ctx echo.Context, err error) error {
	body := errorBody(err)
	if body.Code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
	}
	return ctx.JSON(body.Code, body)
}
