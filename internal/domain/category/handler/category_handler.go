package handler

import (
	"net/http"

	"github.com/laujml/la-cuponera/internal/domain/category/service"
	"github.com/laujml/la-cuponera/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListActive()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrStoreQuery, err.Error())
		return
	}

	response.Success(c, categories)
}
