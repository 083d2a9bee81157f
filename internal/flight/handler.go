package flight

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"flights/pkg/logger"
)

type OfferService interface {
	GetAllOffers(ctx context.Context) (*OffersResponse, error)
	SearchOffers(ctx context.Context, q QuerySpec) (*OffersResponse, error)
	BookOffer(ctx context.Context, req BookingRequest) (*Booking, error)
}

type OfferHandler struct {
	service OfferService
	logger  logger.Client
}

func NewOfferHandler(s OfferService, log logger.Client) *OfferHandler {
	return &OfferHandler{
		service: s,
		logger:  log,
	}
}

func (h *OfferHandler) RegisterRoutes(router gin.IRouter) {
	offers := router.Group("/v1/offers")
	offers.GET("", h.SearchOffersHandler)
	offers.GET("/all", h.GetAllOffersHandler)
	offers.POST("/book", h.BookOfferHandler)
}

// SearchOffersHandler godoc
// @Summary      Search flight offers
// @Description  Aggregates every provider, then filters and orders the merged offers
// @Tags         offers
// @Produce      json
// @Param        companyName       query  string  false  "Exact company name"
// @Param        departureAirport  query  string  false  "Exact departure airport"
// @Param        arrivalAirport    query  string  false  "Exact arrival airport"
// @Param        minPrice          query  number  false  "Inclusive lower price bound"
// @Param        maxPrice          query  number  false  "Inclusive upper price bound"
// @Param        orderBy           query  string  false  "price or transfers"
// @Success      200 {object} OffersResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      504 {object} map[string]string
// @Router       /v1/offers [get]
func (h *OfferHandler) SearchOffersHandler(c *gin.Context) {
	var q QuerySpec
	if err := c.ShouldBindQuery(&q); err != nil {
		sendError(c, NewValidationError(fmt.Errorf("invalid query: %w", err)))
		return
	}

	response, err := h.service.SearchOffers(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAllOffersHandler godoc
// @Summary      List all flight offers
// @Description  Merged offers of every provider, served from cache while fresh
// @Tags         offers
// @Produce      json
// @Success      200 {object} OffersResponse
// @Failure      404 {object} map[string]string
// @Failure      504 {object} map[string]string
// @Router       /v1/offers/all [get]
func (h *OfferHandler) GetAllOffersHandler(c *gin.Context) {
	response, err := h.service.GetAllOffers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// BookOfferHandler godoc
// @Summary      Book an offer
// @Description  Routes the booking to the provider the offer came from
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        request body BookingRequest true "Offer to book"
// @Success      200 {object} Booking
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Failure      504 {object} map[string]string
// @Router       /v1/offers/book [post]
func (h *OfferHandler) BookOfferHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, NewValidationError(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	booking, err := h.service.BookOffer(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *OfferHandler) fail(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			logger.Field{Key: "path", Value: c.FullPath()},
			logger.Field{Key: "status", Value: appErr.Status},
			logger.Err(err),
		)
	}
	sendError(c, appErr)
}

func sendError(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}
