package handler

import (
	"errors"
	"net/http"

	"github.com/laujml/la-cuponera/internal/domain/coupon/export"
	"github.com/laujml/la-cuponera/internal/domain/coupon/service"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/pkg/response"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	service service.CouponService
}

func NewCouponHandler(service service.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

// MyCoupons returns the buyer's coupons partitioned into
// disponibles/canjeados/vencidos, each newest first.
func (h *CouponHandler) MyCoupons(c *gin.Context) {
	buyerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "User not authenticated")
		return
	}

	buckets, err := h.service.MyCoupons(buyerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	response.Success(c, buckets)
}

func (h *CouponHandler) GetCoupon(c *gin.Context) {
	buyerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "User not authenticated")
		return
	}

	coupon, err := h.service.GetCoupon(c.Param("id"), buyerID)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "Coupon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	response.Success(c, coupon)
}

// PrintCoupon serves the standalone printable document for a coupon.
func (h *CouponHandler) PrintCoupon(c *gin.Context) {
	buyerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "User not authenticated")
		return
	}

	coupon, err := h.service.GetCoupon(c.Param("id"), buyerID)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "Coupon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	doc, err := export.RenderPrintable(coupon)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
