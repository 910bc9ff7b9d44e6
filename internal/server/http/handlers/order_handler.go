package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/server/http/dto"
	"github.com/fixpoint/fixpoint/internal/usecase"
)

// OrderHandler manages the repair order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Submit handles POST /api/orders.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.facade.Submit(c.Request.Context(), CurrentActor(c), usecase.SubmitInput{
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders. Customers see their own orders, technicians
// see everything with an optional status filter.
func (h *OrderHandler) List(c *gin.Context) {
	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		status = &s
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	orders, err := h.facade.List(c.Request.Context(), CurrentActor(c), status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Get(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Take handles POST /api/orders/:id/take.
func (h *OrderHandler) Take(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.facade.Take(c.Request.Context(), CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Finish handles POST /api/orders/:id/finish.
func (h *OrderHandler) Finish(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	// The completion note is optional, so an empty body is accepted.
	var req dto.FinishOrderRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.facade.Finish(c.Request.Context(), CurrentActor(c), id, req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.facade.Cancel(c.Request.Context(), CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Update handles PATCH /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := model.OrderPatch{
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		Description:  req.Description,
	}
	if err := h.facade.UpdateInfo(c.Request.Context(), CurrentActor(c), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rate handles POST /api/orders/:id/rate.
func (h *OrderHandler) Rate(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.RateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.facade.Rate(c.Request.Context(), CurrentActor(c), id, req.Rating, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Logs handles GET /api/orders/:id/logs.
func (h *OrderHandler) Logs(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	entries, err := h.facade.Logs(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderLogResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.OrderLogResponse{
			ID:        e.ID,
			OrderID:   e.OrderID,
			StaffID:   e.StaffID,
			Action:    string(e.Action),
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
