package category

import (
	"github.com/laujml/la-cuponera/internal/domain/category/handler"
	"github.com/laujml/la-cuponera/internal/domain/category/repository"
	"github.com/laujml/la-cuponera/internal/domain/category/service"
	"github.com/laujml/la-cuponera/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CategoryModule wires the rubros listing used by the offer filters.
type CategoryModule struct{}

func init() {
	registry.Register(&CategoryModule{})
}

func (m *CategoryModule) Name() string {
	return "category"
}

func (m *CategoryModule) Priority() int {
	return 5
}

func (m *CategoryModule) Init(ctx *registry.ModuleContext) error {
	cRepo := repository.NewCategoryRepository(ctx.DB)
	cService := service.NewCategoryService(cRepo, ctx.Cache)
	cHandler := handler.NewCategoryHandler(cService)

	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CategoryHandler) {
	r.GET("/rubros", h.ListCategories)
}
