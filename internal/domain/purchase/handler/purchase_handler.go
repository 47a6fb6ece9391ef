package handler

import (
	"errors"
	"net/http"

	offerService "github.com/laujml/la-cuponera/internal/domain/offer/service"
	"github.com/laujml/la-cuponera/internal/domain/purchase/service"
	"github.com/laujml/la-cuponera/internal/domain/purchase/strategy"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/pkg/logger"
	"github.com/laujml/la-cuponera/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(service service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

type PurchaseInput struct {
	OfferID string             `json:"oferta_id" binding:"required,uuid"`
	Card    strategy.CardInput `json:"tarjeta" binding:"required"`
}

// Purchase buys one coupon for the authenticated buyer. Expected business
// conditions (expired, sold out) come back as business-code failures; only
// infrastructure errors surface as 5xx with the detail logged, not shown.
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	buyerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "User not authenticated")
		return
	}

	var input PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon, err := h.service.Purchase(buyerID, input.OfferID, input.Card)
	if err != nil {
		switch {
		case errors.Is(err, offerService.ErrOfferNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOfferNotFound, "Oferta no encontrada")
		case errors.Is(err, offerService.ErrOfferExpired):
			response.Fail(c, response.ErrOfferExpired, "Esta oferta ya no está vigente")
		case errors.Is(err, offerService.ErrSoldOut):
			response.Fail(c, response.ErrOfferSoldOut, "Lo sentimos, esta oferta ya no tiene cupones disponibles")
		case errors.Is(err, service.ErrPaymentRejected):
			response.Fail(c, response.ErrPaymentRejected, "Los datos de pago no son válidos")
		case errors.Is(err, service.ErrCodeExhausted):
			response.Error(c, http.StatusServiceUnavailable, response.ErrCodeExhausted, "No se pudo generar el cupón, intenta de nuevo")
		default:
			logger.Log.Error("Purchase failed", zap.String("offer_id", input.OfferID), zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Ocurrió un error, intenta de nuevo")
		}
		return
	}

	response.Success(c, coupon)
}
