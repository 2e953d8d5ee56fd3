/*
Package enquiry - 房源咨询 API 控制器

角色校验在应用服务中完成，控制器只负责参数解析和响应。
*/
package enquiry

import (
	"propertyhub/api/ctxutil"
	"propertyhub/api/response"
	enquiryapp "propertyhub/application/enquiry"

	"github.com/gin-gonic/gin"
)

// Controller 咨询控制器
type Controller struct {
	enquiryService *enquiryapp.ApplicationService
}

// NewController 创建咨询控制器
func NewController(enquiryService *enquiryapp.ApplicationService) *Controller {
	return &Controller{enquiryService: enquiryService}
}

// RegisterRoutes 注册咨询路由
// 静态路径 customer/admin/owner 优先于 :id 匹配
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	enquiryGroup := router.Group("/enquiries")
	{
		enquiryGroup.POST("", c.CreateEnquiry)
		enquiryGroup.GET("/customer", c.ListForCustomer)
		enquiryGroup.GET("/admin", c.ListForAdmin)
		enquiryGroup.GET("/owner", c.ListForOwner)
		enquiryGroup.GET("/:id", c.GetEnquiry)
		enquiryGroup.PUT("/:id/status", c.UpdateStatus)
	}
}

// CreateEnquiry 客户发起咨询
// POST /api/v1/enquiries
func (c *Controller) CreateEnquiry(ctx *gin.Context) {
	var req enquiryapp.CreateEnquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	enquiry, err := c.enquiryService.CreateEnquiry(ctx.Request.Context(), ctxutil.Caller(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, enquiry, "enquiry created successfully")
}

// ListForCustomer 客户查看自己发起的咨询
// GET /api/v1/enquiries/customer
func (c *Controller) ListForCustomer(ctx *gin.Context) {
	list, err := c.enquiryService.ListForCustomer(ctx.Request.Context(), ctxutil.Caller(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, list, "enquiries retrieved successfully")
}

// ListForAdmin 管理员查看全部咨询，可按 owner_id 过滤
// GET /api/v1/enquiries/admin?owner_id=
func (c *Controller) ListForAdmin(ctx *gin.Context) {
	list, err := c.enquiryService.ListForAdmin(ctx.Request.Context(), ctxutil.Caller(ctx), ctx.Query("owner_id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, list, "enquiries retrieved successfully")
}

// ListForOwner 房东查看收到的咨询
// GET /api/v1/enquiries/owner
func (c *Controller) ListForOwner(ctx *gin.Context) {
	list, err := c.enquiryService.ListForOwner(ctx.Request.Context(), ctxutil.Caller(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, list, "enquiries retrieved successfully")
}

// GetEnquiry 查看单条咨询
// GET /api/v1/enquiries/:id
func (c *Controller) GetEnquiry(ctx *gin.Context) {
	enquiry, err := c.enquiryService.GetEnquiry(ctx.Request.Context(), ctxutil.Caller(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, enquiry, "enquiry retrieved successfully")
}

// UpdateStatus 管理员更新咨询状态
// PUT /api/v1/enquiries/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	var req enquiryapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	enquiry, err := c.enquiryService.UpdateStatus(ctx.Request.Context(), ctxutil.Caller(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, enquiry, "enquiry status updated successfully")
}
