package controller

import (
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
}

func NewGamificationController(gamificationService *service.GamificationService) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

// CreateRecord godoc
// @Summary 创建积分记录
// @Description 每个用户只能有一条
// @Tags gamificacion
// @Accept json
// @Produce json
// @Param record body service.GamificationRequest true "积分记录"
// @Success 201 {object} util.Response{data=model.Gamification}
// @Failure 400 {object} util.Response "已存在"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /gamificacion/ [post]
func (c *GamificationController) CreateRecord(ctx *gin.Context) {
	var req service.GamificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.CreateRecord(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// ListRecords godoc
// @Summary 积分记录列表
// @Tags gamificacion
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Gamification}
// @Router /gamificacion/ [get]
func (c *GamificationController) ListRecords(ctx *gin.Context) {
	records, err := c.GamificationService.ListRecords()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetRecord godoc
// @Summary 获取积分记录
// @Tags gamificacion
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response{data=model.Gamification}
// @Failure 404 {object} util.Response
// @Router /gamificacion/{id} [get]
func (c *GamificationController) GetRecord(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.GetRecord(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// UpdateRecord godoc
// @Summary 整体更新积分记录
// @Tags gamificacion
// @Accept json
// @Produce json
// @Param id path int true "记录ID"
// @Param record body service.GamificationRequest true "积分记录"
// @Success 200 {object} util.Response{data=model.Gamification}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /gamificacion/{id} [put]
func (c *GamificationController) UpdateRecord(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.GamificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.UpdateRecord(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// DeleteRecord godoc
// @Summary 删除积分记录
// @Tags gamificacion
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /gamificacion/{id} [delete]
func (c *GamificationController) DeleteRecord(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.GamificationService.DeleteRecord(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"mensaje": "Registro eliminado", "id": id})
}

// AddPoints godoc
// @Summary 增减积分
// @Description delta 可以为负数
// @Tags gamificacion
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param body body service.PointsRequest true "积分变化"
// @Success 200 {object} util.Response{data=model.Gamification}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /gamificacion/usuario/{user_id}/puntos [patch]
func (c *GamificationController) AddPoints(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "user_id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.PointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.AddPoints(userID, req.Delta)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// SetBadge godoc
// @Summary 设置徽章
// @Tags gamificacion
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param body body service.BadgeRequest true "徽章"
// @Success 200 {object} util.Response{data=model.Gamification}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /gamificacion/usuario/{user_id}/badge [patch]
func (c *GamificationController) SetBadge(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "user_id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.BadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.SetBadge(userID, req.Badge)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, record)
}
