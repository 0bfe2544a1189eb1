package api

import (
	"net/http"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	NumberOfTickets int    `json:"number_of_tickets"`
}

type mutationResponse struct {
	State   booking.MutationState `json:"state"`
	Data    *domain.Booking       `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/:code", h.getByCode)
	router.GET("/bookings/email/:email", h.listByEmail)

	router.GET("/tickets", h.listLocal)
	router.GET("/tickets/current", h.current)
	router.PUT("/tickets/current/:key", h.selectCurrent)
	router.DELETE("/tickets/error", h.clearLocalError)
	router.POST("/tickets/reload", h.reloadLocal)
	router.DELETE("/tickets", h.clearLocal)

	router.GET("/mutations/last", h.lastMutation)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	input := domain.CreateBookingInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		NumberOfTickets: req.NumberOfTickets,
	}
	if err := input.Validate(); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *BookingHandler) getByCode(c *gin.Context) {
	b, err := h.service.BookingByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

func (h *BookingHandler) listByEmail(c *gin.Context) {
	list, err := h.service.BookingsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *BookingHandler) listLocal(c *gin.Context) {
	resp := gin.H{"data": h.service.LocalBookings()}
	if err := h.service.LocalError(); err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) selectCurrent(c *gin.Context) {
	if !h.service.SelectLocal(c.Param("key")) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "booking not found on this device"})
		return
	}
	h.current(c)
}

func (h *BookingHandler) clearLocalError(c *gin.Context) {
	h.service.ClearLocalError()
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) current(c *gin.Context) {
	b, ok := h.service.CurrentBooking()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Message: "no booking made yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

func (h *BookingHandler) reloadLocal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.ReloadLocal(c.Request.Context())})
}

func (h *BookingHandler) clearLocal(c *gin.Context) {
	if err := h.service.ClearLocal(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) lastMutation(c *gin.Context) {
	snapshot := h.service.LastMutation()
	resp := mutationResponse{State: snapshot.State, Data: snapshot.Booking}
	if snapshot.Err != nil {
		resp.Message = snapshot.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
