package handler

import (
	"errors"
	"net/http"

	"github.com/laujml/la-cuponera/internal/domain/offer/service"
	"github.com/laujml/la-cuponera/pkg/response"
	"github.com/laujml/la-cuponera/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	service service.OfferService
}

func NewOfferHandler(service service.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

type ListOffersQuery struct {
	utils.Pagination
	CategoryID string `form:"rubro_id"`
	Search     string `form:"q"`
}

// ListOffers returns approved, unexpired offers, newest first. Optional
// category filter and free-text search.
func (h *OfferHandler) ListOffers(c *gin.Context) {
	var query ListOffersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	// Normalize before the call so the echoed page/limit match what was
	// actually served.
	_, limit := query.GetPageOffset()

	offers, total, err := h.service.ListOffers(query.CategoryID, query.Search, query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	response.Success(c, utils.PageResult{
		List:  offers,
		Total: total,
		Page:  query.Page,
		Limit: limit,
	})
}

type ReviewOfferInput struct {
	Status string `json:"estado" binding:"required,oneof=aprobada rechazada"`
}

// ReviewOffer approves or rejects a pending offer. Admin only; route gating
// happens in the module wiring.
func (h *OfferHandler) ReviewOffer(c *gin.Context) {
	var input ReviewOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.ReviewOffer(c.Param("id"), input.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReview):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		case errors.Is(err, service.ErrNotPending):
			response.Error(c, http.StatusNotFound, response.ErrOfferNotFound, "Offer not found or already reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		}
		return
	}

	response.Success(c, gin.H{"estado": input.Status})
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	id := c.Param("id")

	offer, err := h.service.GetOffer(id)
	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOfferNotFound, "Offer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	response.Success(c, offer)
}
