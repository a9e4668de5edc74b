package booking

import (
	"net/http"
	"strconv"

	"homestay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/mine", h.MyBookings)
	rg.GET("/bookings/received", h.ReceivedBookings)
	rg.POST("/bookings/:id/payment", h.ConfirmPayment)
	rg.DELETE("/bookings/:id", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	guestID := c.GetInt64("user_id")

	b, err := h.service.Create(c.Request.Context(), guestID, req)
	if err != nil {
		h.renderError(c, err, "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	actorID := c.GetInt64("user_id")

	b, err := h.service.ConfirmPayment(c.Request.Context(), bookingID, actorID)
	if err != nil {
		h.renderError(c, err, "Failed to confirm payment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	accommodationID, err := strconv.ParseInt(c.Query("accommodation_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid accommodation id")
		return
	}

	actorID := c.GetInt64("user_id")

	if err := h.service.Cancel(c.Request.Context(), bookingID, accommodationID, actorID); err != nil {
		h.renderError(c, err, "Failed to cancel booking")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, offset := pagination(c)

	views, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": views})
}

func (h *Handler) ReceivedBookings(c *gin.Context) {
	limit, offset := pagination(c)

	views, err := h.service.ReceivedBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": views})
}

func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrInvalidRange:
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid check-in/check-out dates")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is not available for the selected dates")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking, room or accommodation not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
