package controller

import (
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// CreateCommunity godoc
// @Summary 创建社区
// @Tags comunidades
// @Accept json
// @Produce json
// @Param community body service.CommunityRequest true "社区信息"
// @Success 201 {object} util.Response{data=model.Community}
// @Failure 400 {object} util.Response
// @Router /comunidades/ [post]
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	var req service.CommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	community, err := c.CommunityService.CreateCommunity(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, community)
}

// ListCommunities godoc
// @Summary 社区列表
// @Tags comunidades
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Community}
// @Router /comunidades/ [get]
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	communities, err := c.CommunityService.ListCommunities()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, communities)
}

// GetCommunity godoc
// @Summary 获取社区
// @Tags comunidades
// @Produce json
// @Param id path int true "社区ID"
// @Success 200 {object} util.Response{data=model.Community}
// @Failure 404 {object} util.Response
// @Router /comunidades/{id} [get]
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	community, err := c.CommunityService.GetCommunity(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, community)
}

// UpdateCommunity godoc
// @Summary 更新社区
// @Tags comunidades
// @Accept json
// @Produce json
// @Param id path int true "社区ID"
// @Param community body service.CommunityRequest true "社区信息"
// @Success 200 {object} util.Response{data=model.Community}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /comunidades/{id} [put]
func (c *CommunityController) UpdateCommunity(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.CommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	community, err := c.CommunityService.UpdateCommunity(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, community)
}

// DeleteCommunity godoc
// @Summary 删除社区
// @Description 成员关系一并删除
// @Tags comunidades
// @Produce json
// @Param id path int true "社区ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /comunidades/{id} [delete]
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CommunityService.DeleteCommunity(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"mensaje": "Comunidad eliminada", "id": id})
}

// ListMembers godoc
// @Summary 社区成员
// @Tags comunidades
// @Produce json
// @Param id path int true "社区ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response
// @Router /comunidad/{id}/participantes [get]
func (c *CommunityController) ListMembers(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	members, err := c.CommunityService.ListMembers(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, members)
}

// AddMember godoc
// @Summary 加入社区
// @Tags comunidades
// @Produce json
// @Param id path int true "社区ID"
// @Param user_id path int true "用户ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "已是成员"
// @Failure 404 {object} util.Response
// @Router /comunidad/{id}/agregar/{user_id} [post]
func (c *CommunityController) AddMember(ctx *gin.Context) {
	id, userID, ok := memberParams(ctx)
	if !ok {
		return
	}

	community, err := c.CommunityService.AddMember(id, userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"mensaje":    "Usuario agregado a la comunidad",
		"comunidad":  community.ChallengeName,
		"usuario_id": userID,
	})
}

// RemoveMember godoc
// @Summary 退出社区
// @Tags comunidades
// @Produce json
// @Param id path int true "社区ID"
// @Param user_id path int true "用户ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "不是成员"
// @Failure 404 {object} util.Response
// @Router /comunidad/{id}/remover/{user_id} [delete]
func (c *CommunityController) RemoveMember(ctx *gin.Context) {
	id, userID, ok := memberParams(ctx)
	if !ok {
		return
	}

	community, err := c.CommunityService.RemoveMember(id, userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"mensaje":    "Usuario removido de la comunidad",
		"comunidad":  community.ChallengeName,
		"usuario_id": userID,
	})
}

func memberParams(ctx *gin.Context) (uint, uint, bool) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, 0, false
	}
	userID, err := util.ParamID(ctx, "user_id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, 0, false
	}
	return id, userID, true
}
