/*
Package cart - 收藏房源（购物车）API 控制器

1. 参数绑定错误: response.HandleError 直接返回 400
2. 业务错误: response.HandleAppError 自动映射状态码
3. 调用方身份由 identity 中间件写入，经 ctxutil.Caller 读取
*/
package cart

import (
	"strconv"

	"propertyhub/api/ctxutil"
	"propertyhub/api/response"
	cartapp "propertyhub/application/cart"

	"github.com/gin-gonic/gin"
)

// Controller 购物车控制器
type Controller struct {
	cartService *cartapp.ApplicationService
}

// NewController 创建购物车控制器
func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes 注册购物车路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.GetCart)
		cartGroup.DELETE("", c.ClearCart)
		cartGroup.POST("/add", c.AddItem)
		cartGroup.DELETE("/remove/:listingId", c.RemoveItem)
	}
}

// AddItem 加入房源，已存在则数量加一
// POST /api/v1/cart/add
func (c *Controller) AddItem(ctx *gin.Context) {
	var req cartapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	cart, err := c.cartService.AddItem(ctx.Request.Context(), ctxutil.Caller(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "item added to cart")
}

// RemoveItem 删除房源整行
// DELETE /api/v1/cart/remove/:listingId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	listingID, err := strconv.ParseInt(ctx.Param("listingId"), 10, 64)
	if err != nil {
		response.HandleError(ctx, err, "listing id must be an integer")
		return
	}

	result, err := c.cartService.RemoveItem(ctx.Request.Context(), ctxutil.Caller(ctx), listingID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, result.Message)
}

// GetCart 获取当前用户的购物车，不存在时返回空购物车
// GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	cart, err := c.cartService.GetCart(ctx.Request.Context(), ctxutil.Caller(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart retrieved successfully")
}

// ClearCart 清空购物车（幂等）
// DELETE /api/v1/cart
func (c *Controller) ClearCart(ctx *gin.Context) {
	result, err := c.cartService.ClearCart(ctx.Request.Context(), ctxutil.Caller(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, result.Message)
}
