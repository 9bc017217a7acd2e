// Package http exposes the order lifecycle over a JSON API.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the order lifecycle API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	transitionHandler  commands.RequestTransitionCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler

	validator services.TransitionValidator
	identity  ports.IdentityProvider
	limiter   RateLimiter
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.RequestTransitionCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	validator services.TransitionValidator,
	identity ports.IdentityProvider,
	limiter RateLimiter,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionHandler:      transitionHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		validator:              validator,
		identity:               identity,
		limiter:                limiter,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", authMiddleware(s.identity))
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/status", s.RequestTransition, rateLimitMiddleware(s.limiter))
	api.POST("/status/preview", s.PreviewTransition)
	api.GET("/orders/:orderId/history", s.GetOrderHistory)
	api.GET("/orders/active", s.GetActiveOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	// Customers create orders for themselves; admin and system callers
	// name the customer in the body.
	userID := actorID(ctx)
	if actorRole(ctx) != order.RoleCustomer {
		if userID, err = kernel.UUIDFromString(req.UserID); err != nil {
			return badRequest(ctx, "Invalid user id")
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, userID, restaurantID, req.AwaitingPayment)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	initial := order.Placed
	if req.AwaitingPayment {
		initial = order.PendingPayment
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID: orderID.String(),
		Status:  initial.String(),
	})
}

// RequestTransition handles POST /api/v1/orders/:orderId/status - moves an
// order to a new status on behalf of the authenticated actor.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requested, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewRequestTransitionCommand(
		orderID, requested, actorID(ctx), actorRole(ctx), req.Reason,
	)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	if req.ExpectedStatus != "" {
		expected, expErr := order.StatusFromString(req.ExpectedStatus)
		if expErr != nil {
			return badRequest(ctx, "Unknown expected status: "+req.ExpectedStatus)
		}
		cmd = cmd.WithExpectedStatus(expected)
	}

	result, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return transitionError(ctx, result, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID:   orderID.String(),
		OldStatus: result.OldStatus.String(),
		NewStatus: result.NewStatus.String(),
		Warnings:  result.Warnings,
	})
}

// PreviewTransition handles POST /api/v1/status/preview - checks a
// transition's legality for the authenticated actor without touching any
// order. The verdict is advisory; the executor re-validates on execution.
func (s *Server) PreviewTransition(ctx echo.Context) error {
	var req PreviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	current, err := order.StatusFromString(req.CurrentStatus)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.CurrentStatus)
	}

	requested, err := order.StatusFromString(req.RequestedStatus)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.RequestedStatus)
	}

	role := actorRole(ctx)
	result, _ := s.validator.Validate(current, requested, role, req.Reason)

	allowed := order.AllowedNext(current, role)
	allowedNext := make([]string, len(allowed))
	for i, status := range allowed {
		allowedNext[i] = status.String()
	}

	return ctx.JSON(http.StatusOK, PreviewResponse{
		Valid:       result.Valid,
		Errors:      result.Errors,
		Warnings:    result.Warnings,
		AllowedNext: allowedNext,
	})
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history - returns the
// order's status history, collapsed to a timeline when ?timeline=true.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	timeline := ctx.QueryParam("timeline") == "true"
	query, err := queries.NewGetOrderHistoryQuery(orderID, timeline)
	if err != nil {
		return badRequest(ctx, "Invalid history query: "+err.Error())
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve history",
		})
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntryResponse{
			Status:     entry.Status.String(),
			OccurredAt: entry.OccurredAt,
			ActorID:    entry.ActorID,
			Reason:     entry.Reason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all orders
// outside the terminal statuses.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, ord := range orders {
		item := ActiveOrderResponse{
			OrderID:      ord.ID.String(),
			Status:       ord.Status.String(),
			RestaurantID: ord.RestaurantID.String(),
		}
		if ord.CourierID != nil {
			item.CourierID = ord.CourierID.String()
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// transitionError maps an executor failure to its HTTP status. The
// validation errors and warnings ride along so UIs can render them inline.
func transitionError(ctx echo.Context, result commands.TransitionResult, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrMissingJustification):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrStorageUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:     code,
		Message:  err.Error(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
