package catalog

import (
	"net/http"
	"strconv"
	"time"

	"homestay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/accommodations", h.Search)
	rg.GET("/accommodations/:id", h.GetAccommodation)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/accommodations", h.CreateAccommodation)
	rg.PUT("/accommodations/:id", h.UpdateAccommodation)
	rg.DELETE("/accommodations/:id", h.DeleteAccommodation)
	rg.GET("/accommodations/mine", h.MyAccommodations)
	rg.POST("/accommodations/:id/rooms", h.AddRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.DELETE("/rooms/:id", h.DeleteRoom)
}

func (h *Handler) Search(c *gin.Context) {
	q := SearchQuery{
		Country:  c.Query("country"),
		State:    c.Query("state"),
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
	}
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	q.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'from' date")
			return
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'to' date")
			return
		}
		q.To = t
	}

	accommodations, total, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err, "Search failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accommodations": accommodations,
		"total":          total,
	})
}

func (h *Handler) GetAccommodation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid accommodation id")
		return
	}

	acc, err := h.service.GetAccommodation(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err, "Failed to load accommodation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accommodation": acc})
}

func (h *Handler) CreateAccommodation(c *gin.Context) {
	var req CreateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	acc, err := h.service.CreateAccommodation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err, "Failed to create accommodation")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"accommodation": acc})
}

func (h *Handler) UpdateAccommodation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid accommodation id")
		return
	}

	var req UpdateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	acc, err := h.service.UpdateAccommodation(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.renderError(c, err, "Failed to update accommodation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accommodation": acc})
}

func (h *Handler) DeleteAccommodation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid accommodation id")
		return
	}

	if err := h.service.DeleteAccommodation(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.renderError(c, err, "Failed to delete accommodation")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) MyAccommodations(c *gin.Context) {
	accommodations, err := h.service.MyAccommodations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load accommodations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accommodations": accommodations})
}

func (h *Handler) AddRoom(c *gin.Context) {
	accID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid accommodation id")
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.AddRoom(c.Request.Context(), c.GetInt64("user_id"), accID, req)
	if err != nil {
		h.renderError(c, err, "Failed to add room")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), c.GetInt64("user_id"), roomID, req)
	if err != nil {
		h.renderError(c, err, "Failed to update room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), c.GetInt64("user_id"), roomID); err != nil {
		h.renderError(c, err, "Failed to delete room")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrInvalidRange:
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid availability window")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case ErrHasBookings:
		response.Error(c, http.StatusConflict, "HAS_BOOKINGS", "Active bookings exist; cancel them first")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
