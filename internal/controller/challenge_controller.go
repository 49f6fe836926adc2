package controller

import (
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// CreateChallenge godoc
// @Summary 创建微挑战
// @Tags microrretos
// @Accept json
// @Produce json
// @Param challenge body service.ChallengeRequest true "挑战内容"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Router /microrretos/ [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.CreateChallenge(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// ListChallenges godoc
// @Summary 微挑战列表
// @Tags microrretos
// @Produce json
// @Param categoria query string false "分类"
// @Param dificultad query string false "难度"
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /microrretos/ [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	filter := repository.ChallengeFilter{
		Category:   ctx.Query("categoria"),
		Difficulty: ctx.Query("dificultad"),
	}

	challenges, err := c.ChallengeService.ListChallenges(filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// GetChallenge godoc
// @Summary 获取微挑战
// @Tags microrretos
// @Produce json
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 404 {object} util.Response
// @Router /microrretos/{id} [get]
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.GetChallenge(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// UpdateChallenge godoc
// @Summary 更新微挑战
// @Tags microrretos
// @Accept json
// @Produce json
// @Param id path int true "挑战ID"
// @Param challenge body service.ChallengeRequest true "挑战内容"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /microrretos/{id} [put]
func (c *ChallengeController) UpdateChallenge(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.UpdateChallenge(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// DeleteChallenge godoc
// @Summary 删除微挑战
// @Description 相关作答记录一并删除
// @Tags microrretos
// @Produce json
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /microrretos/{id} [delete]
func (c *ChallengeController) DeleteChallenge(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ChallengeService.DeleteChallenge(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"mensaje": "Microrreto eliminado", "id": id})
}
