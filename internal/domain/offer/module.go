package offer

import (
	"github.com/laujml/la-cuponera/internal/domain/offer/handler"
	"github.com/laujml/la-cuponera/internal/domain/offer/repository"
	"github.com/laujml/la-cuponera/internal/domain/offer/service"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OfferModule wires the browse/availability read path.
type OfferModule struct{}

func init() {
	registry.Register(&OfferModule{})
}

func (m *OfferModule) Name() string {
	return "offer"
}

func (m *OfferModule) Priority() int {
	return 5
}

func (m *OfferModule) Init(ctx *registry.ModuleContext) error {
	oRepo := repository.NewOfferRepository(ctx.DB)
	oService := service.NewCachedOfferService(service.NewOfferService(oRepo), ctx.Cache, ctx.Metrics)
	oHandler := handler.NewOfferHandler(oService)

	setupRoutes(ctx.Router, oHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OfferHandler) {
	g := r.Group("/ofertas")
	{
		g.GET("", h.ListOffers)
		g.GET("/:id", h.GetOffer)

		admin := g.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.PUT("/:id/revision", h.ReviewOffer)
		}
	}
}
