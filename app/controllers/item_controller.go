package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/app/requests"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/paginate"
)

type ItemController struct {
	items  *services.ItemService
	limits Limits
}

func NewItemController(items *services.ItemService, limits Limits) *ItemController {
	return &ItemController{items: items, limits: limits}
}

// Index handles GET /item.
func (h *ItemController) Index(c *ctx.Context) {
	page, err := h.items.List(c.Context(), paginate.FromQuery(c.R.URL.Query()))
	if err != nil {
		logger.WithCtx(c.Context()).Error("list items", "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.OK(page)
}

// Store handles POST /item.
func (h *ItemController) Store(c *ctx.Context) {
	raw, ok := c.BindFields(h.limits.MaxBodyBytes)
	if !ok {
		return
	}
	in, err := requests.NewItemCreate(raw)
	if rejectInvalid(c, err) {
		return
	}

	id, err := h.items.Create(c.Context(), in)
	if err != nil {
		internal(c, "Create item failed", err)
		return
	}
	c.Created(map[string]any{"id": id})
}
