package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

type CategoryInput struct {
	Name string `json:"name" form:"name" validate:"required"`
}

func GenerateSlug(name string) string {
	return slug.Make(name)
}

func (h *Controller) GetCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "")
		return
	}
	ok(c, "Get categories success", categories)
}

func (h *Controller) GetCategoryByID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Category not found")
		return
	}
	category, err := h.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Category not found")
		return
	}
	ok(c, "Get category detail success", category)
}

func (h *Controller) PostCategory(c *gin.Context) {
	input := middleware.Payload[CategoryInput](c)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		badRequest(c, "Invalid Request", "name is required")
		return
	}

	category := &models.Category{Name: name, Slug: GenerateSlug(name)}
	if err := h.store.CreateCategory(c.Request.Context(), category); err != nil {
		h.respondError(c, err, "")
		return
	}
	ok(c, "Create category success", category)
}
