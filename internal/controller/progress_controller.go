package controller

import (
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// CreateProgress godoc
// @Summary 记录一次作答
// @Tags progresos
// @Accept json
// @Produce json
// @Param progress body service.ProgressRequest true "作答记录"
// @Success 201 {object} util.Response{data=model.Progress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "用户或挑战不存在"
// @Router /progresos/ [post]
func (c *ProgressController) CreateProgress(ctx *gin.Context) {
	var req service.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.CreateProgress(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// ListProgress godoc
// @Summary 作答记录列表
// @Tags progresos
// @Produce json
// @Param usuario_id query int false "用户ID"
// @Param completado query bool false "是否完成"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Failure 400 {object} util.Response
// @Router /progresos/ [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	var filter repository.ProgressFilter

	if raw := ctx.Query("usuario_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "usuario_id inválido")
			return
		}
		id := uint(userID)
		filter.UserID = &id
	}

	completed, err := util.QueryBool(ctx, "completado")
	if err != nil {
		util.BadRequest(ctx, "completado inválido")
		return
	}
	filter.Completed = completed

	records, err := c.ProgressService.ListProgress(filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetProgress godoc
// @Summary 获取作答记录
// @Tags progresos
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /progresos/{id} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.GetProgress(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// UpdateProgress godoc
// @Summary 更新作答记录
// @Tags progresos
// @Accept json
// @Produce json
// @Param id path int true "记录ID"
// @Param progress body service.ProgressRequest true "作答记录"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progresos/{id} [put]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateProgress(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// SetCompleted godoc
// @Summary 修改完成状态
// @Tags progresos
// @Accept json
// @Produce json
// @Param id path int true "记录ID"
// @Param body body service.CompletionRequest true "完成状态"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progresos/{id}/completado [patch]
func (c *ProgressController) SetCompleted(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.CompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetCompleted(id, *req.Completed)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// DeleteProgress godoc
// @Summary 删除作答记录
// @Tags progresos
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progresos/{id} [delete]
func (c *ProgressController) DeleteProgress(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.DeleteProgress(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"mensaje": "Progreso eliminado", "id": id})
}
