package api

import (
	"net/http"

	"github.com/Domenick1991/gnawa-tickets/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/event", h.event)
	router.GET("/artists", h.list)
	router.GET("/artists/:id", h.get)
}

func (h *CatalogHandler) event(c *gin.Context) {
	event, err := h.service.EventInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": event})
}

func (h *CatalogHandler) list(c *gin.Context) {
	artists, err := h.service.Artists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artists})
}

func (h *CatalogHandler) get(c *gin.Context) {
	artist, err := h.service.Artist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artist})
}
