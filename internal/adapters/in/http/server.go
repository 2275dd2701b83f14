// Package http exposes the application's use cases over a REST API.
// It coordinates between HTTP handlers and application use cases; all
// business rules live in the command and query handlers.
package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// maxReportedErrors caps how many per-order errors a manual polling-pass
// trigger reports back in its HTTP response.
const maxReportedErrors = 10

// ErrorResponse is the JSON error envelope of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server implements the REST API for order, shipment and location operations.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	updateOrderStatusHandler     commands.UpdateOrderStatusCommandHandler
	confirmPaymentHandler        commands.ConfirmPaymentCommandHandler
	checkPendingShipmentsHandler commands.CheckPendingShipmentsCommandHandler
	syncLocationsHandler         commands.SyncLocationsCommandHandler

	// Query handlers
	getOrderViewHandler     queries.GetOrderViewQueryHandler
	getActiveRegionsHandler queries.GetActiveRegionsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	checkPendingShipmentsHandler commands.CheckPendingShipmentsCommandHandler,
	syncLocationsHandler commands.SyncLocationsCommandHandler,
	getOrderViewHandler queries.GetOrderViewQueryHandler,
	getActiveRegionsHandler queries.GetActiveRegionsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		confirmPaymentHandler:        confirmPaymentHandler,
		checkPendingShipmentsHandler: checkPendingShipmentsHandler,
		syncLocationsHandler:         syncLocationsHandler,
		getOrderViewHandler:          getOrderViewHandler,
		getActiveRegionsHandler:      getActiveRegionsHandler,
	}
}

// RegisterRoutes wires all endpoints into the echo instance.
// The health endpoint is public; everything under /api/v1 requires a token,
// and mutating endpoints additionally require the admin role.
func (s *Server) RegisterRoutes(e *echo.Echo, tokens map[string]Role) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", TokenAuth(tokens))
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/locations/regions", s.GetActiveRegions)

	admin := api.Group("", RequireAdmin())
	admin.POST("/orders", s.CreateOrder)
	admin.PUT("/orders/:id/status", s.UpdateOrderStatus)
	admin.POST("/payments/:id/confirm", s.ConfirmPayment)
	admin.POST("/shipments/check", s.CheckPendingShipments)
	admin.POST("/locations/sync", s.SyncLocations)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CustomerPayload is the buyer block of an order creation request.
type CustomerPayload struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	RegionID    int    `json:"region_id" validate:"gt=0"`
	SubRegionID int    `json:"sub_region_id" validate:"gt=0"`
}

// CreateOrderRequest is the payload of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderNumber   string          `json:"order_number" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	TotalCents    int64           `json:"total_cents" validate:"gte=0"`
	ItemCount     int             `json:"item_count" validate:"gt=0"`
	WeightKg      int             `json:"weight_kg" validate:"gte=0"`
	Customer      CustomerPayload `json:"customer" validate:"required"`
}

// CreateOrderResponse is the answer of POST /api/v1/orders.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	paymentMethod, err := order.ParsePaymentMethod(request.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.OrderNumber,
		paymentMethod,
		request.TotalCents,
		order.Customer{
			FirstName:   request.Customer.FirstName,
			LastName:    request.Customer.LastName,
			Phone:       request.Customer.Phone,
			Address:     request.Customer.Address,
			RegionID:    request.Customer.RegionID,
			SubRegionID: request.Customer.SubRegionID,
		},
		request.ItemCount,
		request.WeightKg,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// UpdateOrderStatusRequest is the payload of PUT /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
// On success the fresh order view is returned so the admin panel can render
// the resolved status without a second round trip.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&request); err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrderView(ctx, orderID)
}

// ConfirmPaymentRequest is the payload of POST /api/v1/payments/:id/confirm.
type ConfirmPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"gte=0"`
}

// ConfirmPayment handles POST /api/v1/payments/:id/confirm.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ConfirmPaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&request); err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, request.AmountCents)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrderView(ctx, orderID)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	return s.respondWithOrderView(ctx, orderID)
}

// CheckPendingShipmentsResponse is the answer of POST /api/v1/shipments/check.
type CheckPendingShipmentsResponse struct {
	Checked   int      `json:"checked"`
	Updated   int      `json:"updated"`
	Delivered int      `json:"delivered"`
	Errors    []string `json:"errors,omitempty"`
}

// CheckPendingShipments handles POST /api/v1/shipments/check.
// Triggers the same polling pass the scheduler runs, for manual use.
func (s *Server) CheckPendingShipments(ctx echo.Context) error {
	result, err := s.checkPendingShipmentsHandler.Handle(
		ctx.Request().Context(),
		commands.NewCheckPendingShipmentsCommand(),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	reported := result.Errors
	if len(reported) > maxReportedErrors {
		reported = reported[:maxReportedErrors]
	}

	return ctx.JSON(http.StatusOK, CheckPendingShipmentsResponse{
		Checked:   result.Checked,
		Updated:   result.Updated,
		Delivered: result.Delivered,
		Errors:    reported,
	})
}

// SyncLocationsResponse is the answer of POST /api/v1/locations/sync.
type SyncLocationsResponse struct {
	Regions             int   `json:"regions"`
	SubRegions          int   `json:"sub_regions"`
	PickupPoints        int   `json:"pickup_points"`
	Deactivated         int64 `json:"deactivated"`
	DerivedPickupPoints bool  `json:"derived_pickup_points"`
}

// SyncLocations handles POST /api/v1/locations/sync.
func (s *Server) SyncLocations(ctx echo.Context) error {
	result, err := s.syncLocationsHandler.Handle(
		ctx.Request().Context(),
		commands.NewSyncLocationsCommand(),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SyncLocationsResponse{
		Regions:             result.Regions,
		SubRegions:          result.SubRegions,
		PickupPoints:        result.PickupPoints,
		Deactivated:         result.Deactivated,
		DerivedPickupPoints: result.DerivedPickupPoints,
	})
}

// SubRegionResponse is one deliverable sub-region of a region answer.
type SubRegionResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	HasPickupPoint bool   `json:"has_pickup_point"`
}

// RegionResponse is one active region of GET /api/v1/locations/regions.
type RegionResponse struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Slug       string              `json:"slug"`
	ZoneID     int                 `json:"zone_id"`
	SubRegions []SubRegionResponse `json:"sub_regions"`
}

// GetActiveRegions handles GET /api/v1/locations/regions.
func (s *Server) GetActiveRegions(ctx echo.Context) error {
	regions, err := s.getActiveRegionsHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetActiveRegionsQuery(),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]RegionResponse, 0, len(regions))
	for _, region := range regions {
		subRegions := make([]SubRegionResponse, 0, len(region.SubRegions))
		for _, subRegion := range region.SubRegions {
			subRegions = append(subRegions, SubRegionResponse{
				ID:             subRegion.ID,
				Name:           subRegion.Name,
				Slug:           subRegion.Slug,
				HasPickupPoint: subRegion.HasPickupPoint,
			})
		}
		response = append(response, RegionResponse{
			ID:         region.ID,
			Name:       region.Name,
			Slug:       region.Slug,
			ZoneID:     region.ZoneID,
			SubRegions: subRegions,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// OrderViewResponse is the admin view of one order.
type OrderViewResponse struct {
	ID              string  `json:"id"`
	OrderNumber     string  `json:"order_number"`
	PaymentMethod   string  `json:"payment_method"`
	EffectiveStatus string  `json:"status"`
	TotalCents      int64   `json:"total_cents"`
	ItemCount       int     `json:"item_count"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	Tracking        *string `json:"tracking"`
	LabelURL        *string `json:"label_url"`
	ParcelStatus    *string `json:"parcel_status"`
}

func (s *Server) respondWithOrderView(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderViewQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.getOrderViewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderViewResponse{
		ID:              view.ID.String(),
		OrderNumber:     view.OrderNumber,
		PaymentMethod:   view.PaymentMethod,
		EffectiveStatus: view.EffectiveStatus,
		TotalCents:      view.TotalCents,
		ItemCount:       view.ItemCount,
		CustomerName:    view.CustomerName,
		CustomerPhone:   view.CustomerPhone,
		Tracking:        view.Tracking,
		LabelURL:        view.LabelURL,
		ParcelStatus:    view.ParcelStatus,
	})
}

// writeError maps application errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrPaymentAmountMismatch),
		errors.Is(err, order.ErrPaymentConfirmationNotSupported):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
