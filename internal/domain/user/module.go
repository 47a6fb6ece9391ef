package user

import (
	"github.com/laujml/la-cuponera/internal/domain/user/handler"
	"github.com/laujml/la-cuponera/internal/domain/user/repository"
	"github.com/laujml/la-cuponera/internal/domain/user/service"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule wires accounts, sessions and profiles.
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	uRepo := repository.NewUserRepository(ctx.DB)
	uService := service.NewUserService(uRepo)
	uHandler := handler.NewUserHandler(uService)

	setupRoutes(ctx.Router, uHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	g := r.Group("/auth")
	{
		g.POST("/registro", h.Register)
		g.POST("/login", h.Login)
	}

	perfil := r.Group("/perfil")
	perfil.Use(middleware.AuthMiddleware())
	{
		perfil.GET("", h.Me)
		perfil.PUT("", h.UpdateProfile)
	}
}
