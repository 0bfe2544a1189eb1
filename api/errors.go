package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/gnawa-tickets/internal/client"
	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/query"
	"github.com/Domenick1991/gnawa-tickets/internal/service/booking"
	"github.com/Domenick1991/gnawa-tickets/internal/store"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message          string `json:"message"`
	ConfirmationCode string `json:"confirmation_code,omitempty"`
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrFullNameRequired) ||
		errors.Is(err, domain.ErrEmailRequired) ||
		errors.Is(err, domain.ErrPhoneRequired) ||
		errors.Is(err, domain.ErrTicketsOutOfRange)
}

func respondError(c *gin.Context, err error) {
	var apiErr *client.APIError
	var persistErr *booking.PersistError

	switch {
	case isValidationError(err), errors.Is(err, query.ErrDisabledQuery):
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, errorResponse{
			Message:          "booking confirmed but could not be saved on this device",
			ConfirmationCode: persistErr.Booking.ConfirmationCode,
		})
	case errors.Is(err, store.ErrStorageWrite), errors.Is(err, store.ErrStorageDelete):
		c.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, errorResponse{Message: client.UserMessage(err)})
	default:
		c.JSON(http.StatusBadGateway, errorResponse{Message: client.UserMessage(err)})
	}
}
