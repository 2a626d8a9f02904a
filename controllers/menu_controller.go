package controllers

import (
	"github.com/gin-gonic/gin"

	"canteen/pkg/resp"
	"canteen/services"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// GET /api/menu
func (h *MenuController) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}
