package http

import (
	"errors"
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/services"
	"shop/internal/generated/servers"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	resolveCancelRequestHandler commands.ResolveCancelRequestCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCancelRequestsHandler queries.GetCancelRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	resolveCancelRequestHandler commands.ResolveCancelRequestCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCancelRequestsHandler queries.GetCancelRequestsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		cancelOrderHandler:          cancelOrderHandler,
		resolveCancelRequestHandler: resolveCancelRequestHandler,
		getOrderHandler:             getOrderHandler,
		getCancelRequestsHandler:    getCancelRequestsHandler,
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromBytes(newOrder.CustomerId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid customer id")
	}
	addressID, err := kernel.UUIDFromBytes(newOrder.AddressId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid address id")
	}

	items := make([]commands.CreateOrderItem, 0, len(newOrder.Items))
	for _, item := range newOrder.Items {
		productID, itemErr := kernel.UUIDFromBytes(item.ProductId[:])
		if itemErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid product id")
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, addressID, items, newOrder.ShippingFee,
	)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryToResponse(resp))
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderId/status - moves an
// order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var change servers.StatusChange
	if err := ctx.Bind(&change); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	status, err := order.StatusFromString(change.Status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+change.Status)
	}

	actor, err := order.ActorFromString(change.Actor)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid actor: "+change.Actor)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, change.Note, actor)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status change: "+err.Error())
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel - a customer
// cancellation. Depending on order age and status it cancels directly or
// queues an admin review.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var req servers.CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}
	customerID, err := kernel.UUIDFromBytes(req.CustomerId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid customer id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, customerID, req.Reason)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid cancellation: "+err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// ReviewCancelRequest handles POST /api/v1/orders/:orderId/cancel-review -
// an admin approving or rejecting a pending cancellation request.
func (s *Server) ReviewCancelRequest(ctx echo.Context, orderId openapi_types.UUID) error {
	var review servers.CancelReview
	if err := ctx.Bind(&review); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}
	adminID, err := kernel.UUIDFromBytes(review.AdminId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid admin id")
	}

	resolution, err := commands.ResolutionFromString(review.Action)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid action: "+review.Action)
	}

	cmd, err := commands.NewResolveCancelRequestCommand(orderID, adminID, resolution, review.Reason)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid resolution: "+err.Error())
	}

	resolved, err := s.resolveCancelRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(resolved))
}

// GetCancelRequests handles GET /api/v1/orders/cancel-requests - lists the
// admin review backlog.
func (s *Server) GetCancelRequests(ctx echo.Context) error {
	query := queries.NewGetCancelRequestsQuery()

	pending, err := s.getCancelRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve cancel requests")
	}

	response := make([]servers.CancelRequestSummary, len(pending))
	for i, req := range pending {
		response[i] = servers.CancelRequestSummary{
			OrderId:     req.OrderID.Bytes(),
			Code:        req.Code,
			CustomerId:  req.CustomerID.Bytes(),
			RequestedBy: req.RequestedBy.Bytes(),
			Reason:      req.Reason,
			RequestedAt: req.RequestedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// domainErrorResponse maps application errors onto HTTP statuses:
// validation errors to 400, missing objects to 404, state machine and stock
// conflicts to 409, everything else to 500.
func domainErrorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrTerminalState),
		errors.Is(err, order.ErrNoActiveCancelRequest),
		errors.Is(err, services.ErrAlreadyTerminal),
		errors.Is(err, services.ErrCannotCancelAtThisStage),
		errors.Is(err, product.ErrInsufficientStock):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

// orderToResponse maps an order aggregate to its API representation.
func orderToResponse(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderItem{
			ProductId: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	history := make([]servers.HistoryEntry, 0, len(o.History()))
	for _, entry := range o.History() {
		history = append(history, servers.HistoryEntry{
			Status: entry.Status().String(),
			Note:   entry.Note(),
			Actor:  entry.Actor().String(),
			At:     entry.At(),
		})
	}

	return servers.Order{
		Id:           o.ID().Bytes(),
		Code:         o.Code(),
		CustomerId:   o.CustomerID().Bytes(),
		AddressId:    o.AddressID().Bytes(),
		Status:       o.Status().String(),
		TotalPrice:   o.TotalPrice(),
		ShippingFee:  o.ShippingFee(),
		CancelReason: o.CancelReason(),
		Items:        items,
		History:      history,
	}
}

// queryToResponse maps the read model of GetOrderQuery to the API shape.
func queryToResponse(resp queries.GetOrderQueryResponse) servers.Order {
	items := make([]servers.OrderItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, servers.OrderItem{
			ProductId: item.ProductID.Bytes(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	history := make([]servers.HistoryEntry, 0, len(resp.History))
	for _, entry := range resp.History {
		history = append(history, servers.HistoryEntry{
			Status: entry.Status,
			Note:   entry.Note,
			Actor:  entry.Actor,
			At:     entry.At,
		})
	}

	return servers.Order{
		Id:           resp.ID.Bytes(),
		Code:         resp.Code,
		CustomerId:   resp.CustomerID.Bytes(),
		AddressId:    resp.AddressID.Bytes(),
		Status:       resp.Status,
		TotalPrice:   resp.TotalPrice,
		ShippingFee:  resp.ShippingFee,
		CancelReason: resp.CancelReason,
		Items:        items,
		History:      history,
	}
}
