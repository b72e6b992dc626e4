package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apporder "github.com/shopline/backend/internal/application/order"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	assembler   *apporder.AssemblerService
	fulfillment *apporder.FulfillmentService
	cancel      *apporder.CancelService
	query       *apporder.QueryService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	assembler *apporder.AssemblerService,
	fulfillment *apporder.FulfillmentService,
	cancel *apporder.CancelService,
	query *apporder.QueryService,
) *OrderHandler {
	return &OrderHandler{
		assembler:   assembler,
		fulfillment: fulfillment,
		cancel:      cancel,
		query:       query,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/items/:item_id/option", h.ChangeOption)
	}

	items := rg.Group("/order-items")
	{
		items.POST("/confirm", h.Confirm)
		items.POST("/cancel", h.Cancel)
		items.GET("/:id/history", h.GetItemHistory)
	}

	deliveries := rg.Group("/deliveries")
	{
		deliveries.POST("", h.AssignDeliveries)
		deliveries.GET("/:batch_flag", h.GetDeliveriesByFlag)
	}

	rg.GET("/shoppers/me/point-ledger", h.GetPointLedger)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	cmd, err := req.toCommand(shopperID)
	if err != nil {
		h.BadRequest(c, "invalid id in request body")
		return
	}

	resp, err := h.assembler.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order id")
		return
	}

	resp, err := h.query.GetOrder(c.Request.Context(), shopperID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	page, pageSize := parsePagination(c)

	orders, total, err := h.query.ListOrders(c.Request.Context(), shopperID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessPaged(c, orders, total, page, pageSize)
}

// ChangeOption handles PATCH /orders/:id/items/:item_id/option
func (h *OrderHandler) ChangeOption(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order id")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "invalid order item id")
		return
	}

	var req ChangeOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		h.BadRequest(c, "invalid option id")
		return
	}

	if err := h.assembler.ChangeItemOption(c.Request.Context(), shopperID, orderID, itemID, optionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}

// Confirm handles POST /order-items/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	ids, err := parseUUIDList(req.OrderItemIDs)
	if err != nil {
		h.BadRequest(c, "invalid order item id")
		return
	}

	result, err := h.fulfillment.Confirm(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AssignDeliveries handles POST /deliveries
func (h *OrderHandler) AssignDeliveries(c *gin.Context) {
	var req AssignDeliveriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	entries := make([]apporder.DeliveryAssignment, 0, len(req.Deliveries))
	for _, d := range req.Deliveries {
		orderID, err := uuid.Parse(d.OrderID)
		if err != nil {
			h.BadRequest(c, "invalid order id")
			return
		}
		itemIDs, err := parseUUIDList(d.OrderItemIDs)
		if err != nil {
			h.BadRequest(c, "invalid order item id")
			return
		}
		entries = append(entries, apporder.DeliveryAssignment{
			OrderID:       orderID,
			OrderItemIDs:  itemIDs,
			CompanyCode:   d.Company,
			InvoiceNumber: d.InvoiceNumber,
		})
	}

	result, err := h.fulfillment.AssignDeliveries(c.Request.Context(), entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetPointLedger handles GET /shoppers/me/point-ledger
func (h *OrderHandler) GetPointLedger(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	entries, err := h.query.GetPointLedger(c.Request.Context(), shopperID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetDeliveriesByFlag handles GET /deliveries/:batch_flag
func (h *OrderHandler) GetDeliveriesByFlag(c *gin.Context) {
	batchFlag := c.Param("batch_flag")
	if batchFlag == "" {
		h.BadRequest(c, "batch flag is required")
		return
	}

	deliveries, err := h.query.GetDeliveriesByFlag(c.Request.Context(), batchFlag)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deliveries)
}

// Cancel handles POST /order-items/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	shopperID, err := getShopperID(c)
	if err != nil {
		h.Unauthorized(c, "X-Shopper-ID header is required")
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	ids, err := parseUUIDList(req.OrderItemIDs)
	if err != nil {
		h.BadRequest(c, "invalid order item id")
		return
	}

	acceptable := make([]order.Status, 0, len(req.AcceptableStatuses))
	for _, s := range req.AcceptableStatuses {
		status := order.Status(s)
		if !status.IsValid() {
			h.BadRequest(c, "invalid status in acceptable_statuses")
			return
		}
		acceptable = append(acceptable, status)
	}

	result, err := h.cancel.Cancel(c.Request.Context(), apporder.CancelCommand{
		ShopperID:          shopperID,
		OrderItemIDs:       ids,
		AcceptableStatuses: acceptable,
		Reason:             req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetItemHistory handles GET /order-items/:id/history
func (h *OrderHandler) GetItemHistory(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order item id")
		return
	}

	histories, err := h.query.GetItemHistory(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, histories)
}
