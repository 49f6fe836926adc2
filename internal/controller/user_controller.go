package controller

import (
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户相关的HTTP请求
type UserController struct {
	UserService         *service.UserService
	ProgressService     *service.ProgressService
	GamificationService *service.GamificationService
	CommunityService    *service.CommunityService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(
	userService *service.UserService,
	progressService *service.ProgressService,
	gamificationService *service.GamificationService,
	communityService *service.CommunityService,
) *UserController {
	return &UserController{
		UserService:         userService,
		ProgressService:     progressService,
		GamificationService: gamificationService,
		CommunityService:    communityService,
	}
}

// CreateUser godoc
// @Summary 创建用户
// @Description 名称在激活用户中必须唯一
// @Tags usuarios
// @Accept json
// @Produce json
// @Param user body service.UserRequest true "用户信息"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "参数错误或名称已存在"
// @Router /usuarios/ [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateUser(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// ListUsers godoc
// @Summary 激活用户列表
// @Tags usuarios
// @Produce json
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /usuarios/ [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.GetActiveUsers()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ListDeletedUsers godoc
// @Summary 已删除用户列表
// @Tags usuarios
// @Produce json
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /usuarios/eliminados [get]
func (c *UserController) ListDeletedUsers(ctx *gin.Context) {
	users, err := c.UserService.GetDeletedUsers()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// SearchUser godoc
// @Summary 按名称查找激活用户
// @Tags usuarios
// @Produce json
// @Param nombre path string true "用户名称"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /usuarios/buscar/{nombre} [get]
func (c *UserController) SearchUser(ctx *gin.Context) {
	user, err := c.UserService.FindActiveByName(ctx.Param("nombre"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetUser godoc
// @Summary 获取单个用户
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /usuarios/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.GetUserByID(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary 整体更新用户
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param user body service.UserRequest true "用户信息"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /usuarios/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeleteUser godoc
// @Summary 逻辑删除用户
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /usuarios/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DeleteUser(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"mensaje": "Usuario eliminado", "id": id})
}

// RestoreUser godoc
// @Summary 恢复已删除用户
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /usuarios/restaurar/{id} [put]
func (c *UserController) RestoreUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.RestoreUser(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadPhoto godoc
// @Summary 上传用户头像
// @Tags usuarios
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "用户ID"
// @Param foto formData file true "图片文件"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /usuarios/{id}/foto [post]
func (c *UserController) UploadPhoto(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fileHeader, err := ctx.FormFile("foto")
	if err != nil {
		util.BadRequest(ctx, "archivo 'foto' requerido")
		return
	}
	if fileHeader.Size > util.MaxPhotoSize {
		util.BadRequest(ctx, "la imagen supera el tamaño máximo de 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	user, err := c.UserService.UploadPhoto(ctx.Request.Context(), id, file, fileHeader.Size)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListUserProgress godoc
// @Summary 用户的作答记录
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Failure 404 {object} util.Response
// @Router /usuarios/{id}/progresos [get]
func (c *UserController) ListUserProgress(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	records, err := c.ProgressService.ListUserProgress(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetUserGamification godoc
// @Summary 用户的积分记录
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.Gamification}
// @Failure 404 {object} util.Response
// @Router /usuarios/{id}/gamificacion [get]
func (c *UserController) GetUserGamification(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.GamificationService.GetByUser(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// ListUserCommunities godoc
// @Summary 用户加入的社区
// @Tags usuarios
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=[]model.Community}
// @Failure 404 {object} util.Response
// @Router /usuarios/{id}/comunidades [get]
func (c *UserController) ListUserCommunities(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	communities, err := c.CommunityService.ListUserCommunities(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, communities)
}
