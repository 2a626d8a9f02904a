package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"canteen/pkg/apperr"
	"canteen/pkg/resp"
	"canteen/services"
	"canteen/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// POST /api/cart — 201 for a new line, 200 when merged into an existing one.
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	line, merged, err := h.Svc.Add(c.Request.Context(), uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrMenuNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, apperr.ErrInvalidQuantity):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	if merged {
		resp.OK(c, line)
		return
	}
	resp.Created(c, line)
}

// GET /api/cart — 404 when the cart is empty.
func (h *CartController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	lines, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if len(lines) == 0 {
		resp.NotFound(c, "cart is empty")
		return
	}
	resp.OK(c, lines)
}

// PUT /api/cart/update
func (h *CartController) UpdateQuantity(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		MenuItemID uint `json:"menuId" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	line, err := h.Svc.UpdateQuantity(c.Request.Context(), uid, req.MenuItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidQuantity):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, apperr.ErrLineNotFound):
			resp.NotFound(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, line)
}

// DELETE /api/cart/:id
func (h *CartController) Remove(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid item id")
		return
	}

	if err := h.Svc.Remove(c.Request.Context(), uid, uint(id)); err != nil {
		if errors.Is(err, apperr.ErrLineNotFound) {
			resp.NotFound(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "item removed from cart"})
}
