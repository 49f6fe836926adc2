package controller

import (
	"errors"
	"fmt"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// page 所有模板共用的数据结构
type page struct {
	Title string
	Error string
	Data  interface{}
}

type communityPage struct {
	Community *model.Community
	Members   []model.User
	Users     []model.User
}

// UserForm 页面表单提交的用户字段
type UserForm struct {
	Name     string `form:"nombre" binding:"required,max=100"`
	Age      int    `form:"edad" binding:"gte=0,lte=150"`
	Category string `form:"categoria" binding:"required,max=100"`
}

type ChallengeForm struct {
	Category   string `form:"categoria" binding:"required"`
	Difficulty string `form:"dificultad" binding:"required"`
	Content    string `form:"contenido" binding:"required"`
	Answer     string `form:"respuesta" binding:"required"`
}

type MemberForm struct {
	UserID uint `form:"usuario_id" binding:"required"`
}

// WebController 服务端渲染的管理页面
type WebController struct {
	UserService      *service.UserService
	ChallengeService *service.ChallengeService
	CommunityService *service.CommunityService
	ReportService    *service.ReportService
}

func NewWebController(
	userService *service.UserService,
	challengeService *service.ChallengeService,
	communityService *service.CommunityService,
	reportService *service.ReportService,
) *WebController {
	return &WebController{
		UserService:      userService,
		ChallengeService: challengeService,
		CommunityService: communityService,
		ReportService:    reportService,
	}
}

// statusFor 页面上的业务错误与 JSON 接口保持相同的状态码
func statusFor(err error) int {
	switch {
	case util.IsNotFound(err):
		return http.StatusNotFound
	case util.IsConflict(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (c *WebController) Index(ctx *gin.Context) {
	users, err := c.UserService.GetActiveUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	challenges, err := c.ChallengeService.ListChallenges(repository.ChallengeFilter{})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	communities, err := c.CommunityService.ListCommunities()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "index.html", page{
		Title: "Inicio",
		Data: gin.H{
			"Users":       len(users),
			"Challenges":  len(challenges),
			"Communities": len(communities),
		},
	})
}

func (c *WebController) renderUsers(ctx *gin.Context, status int, message string) {
	users, err := c.UserService.GetActiveUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(status, "usuarios.html", page{Title: "Usuarios", Error: message, Data: users})
}

func (c *WebController) Users(ctx *gin.Context) {
	c.renderUsers(ctx, http.StatusOK, "")
}

// CreateUser 成功后 303 跳回列表，失败时带错误信息重新渲染
func (c *WebController) CreateUser(ctx *gin.Context) {
	var form UserForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderUsers(ctx, http.StatusBadRequest, err.Error())
		return
	}

	_, err := c.UserService.CreateUser(service.UserRequest{
		Name:     form.Name,
		Age:      form.Age,
		Category: form.Category,
	})
	if err != nil {
		if status := statusFor(err); status != http.StatusInternalServerError {
			c.renderUsers(ctx, status, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/web/usuarios")
}

func (c *WebController) renderChallenges(ctx *gin.Context, status int, message string) {
	challenges, err := c.ChallengeService.ListChallenges(repository.ChallengeFilter{})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(status, "microrretos.html", page{Title: "Microrretos", Error: message, Data: challenges})
}

func (c *WebController) Challenges(ctx *gin.Context) {
	c.renderChallenges(ctx, http.StatusOK, "")
}

func (c *WebController) CreateChallenge(ctx *gin.Context) {
	var form ChallengeForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderChallenges(ctx, http.StatusBadRequest, err.Error())
		return
	}

	_, err := c.ChallengeService.CreateChallenge(service.ChallengeRequest{
		Category:   form.Category,
		Difficulty: form.Difficulty,
		Content:    form.Content,
		Answer:     form.Answer,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/web/microrretos")
}

func (c *WebController) Communities(ctx *gin.Context) {
	summaries, err := c.CommunityService.ListSummaries()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "comunidades.html", page{Title: "Comunidades", Data: summaries})
}

func (c *WebController) renderCommunity(ctx *gin.Context, id uint, status int, message string) {
	community, err := c.CommunityService.GetCommunity(id)
	if err != nil {
		if util.IsNotFound(err) {
			ctx.HTML(http.StatusNotFound, "comunidad.html", page{Title: "Comunidad", Error: err.Error()})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	members, err := c.CommunityService.ListMembers(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	users, err := c.UserService.GetActiveUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.HTML(status, "comunidad.html", page{
		Title: community.ChallengeName,
		Error: message,
		Data: &communityPage{
			Community: community,
			Members:   members,
			Users:     users,
		},
	})
}

func (c *WebController) Community(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.renderCommunity(ctx, id, http.StatusOK, "")
}

func (c *WebController) AddMember(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var form MemberForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderCommunity(ctx, id, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := c.CommunityService.AddMember(id, form.UserID); err != nil {
		if status := statusFor(err); status != http.StatusInternalServerError {
			c.renderCommunity(ctx, id, status, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/web/comunidades/%d", id))
}

func (c *WebController) Ranking(ctx *gin.Context) {
	rows, err := c.ReportService.Ranking()
	if err != nil && !errors.Is(err, util.ErrNoReportData) {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "ranking.html", page{Title: "Ranking", Data: rows})
}
