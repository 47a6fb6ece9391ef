package coupon

import (
	"github.com/laujml/la-cuponera/internal/domain/coupon/handler"
	"github.com/laujml/la-cuponera/internal/domain/coupon/repository"
	"github.com/laujml/la-cuponera/internal/domain/coupon/service"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CouponModule wires the buyer-facing coupon read path and printable export.
type CouponModule struct{}

func init() {
	registry.Register(&CouponModule{})
}

func (m *CouponModule) Name() string {
	return "coupon"
}

func (m *CouponModule) Priority() int {
	return 10
}

func (m *CouponModule) Init(ctx *registry.ModuleContext) error {
	cRepo := repository.NewCouponRepository(ctx.DB)
	cService := service.NewCouponService(cRepo)
	cHandler := handler.NewCouponHandler(cService)

	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CouponHandler) {
	g := r.Group("/cupones")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.MyCoupons)
		g.GET("/:id", h.GetCoupon)
		g.GET("/:id/impresion", h.PrintCoupon)
	}
}
