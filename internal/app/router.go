package app

import (
	"microhabits_backend/docs"
	"microhabits_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerUserRoutes(router, c)
	a.registerChallengeRoutes(router, c)
	a.registerProgressRoutes(router, c)
	a.registerGamificationRoutes(router, c)
	a.registerCommunityRoutes(router, c)
	a.registerReportRoutes(router, c)
	a.registerWebRoutes(router, c)
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers) {
	users := router.Group("/usuarios")
	{
		users.POST("/", c.user.CreateUser)
		users.GET("/", c.user.ListUsers)
		users.GET("/eliminados", c.user.ListDeletedUsers)
		users.GET("/buscar/:nombre", c.user.SearchUser)
		users.PUT("/restaurar/:id", c.user.RestoreUser)
		users.GET("/:id", c.user.GetUser)
		users.PUT("/:id", c.user.UpdateUser)
		users.DELETE("/:id", c.user.DeleteUser)
		users.POST("/:id/foto", c.user.UploadPhoto)
		users.GET("/:id/progresos", c.user.ListUserProgress)
		users.GET("/:id/gamificacion", c.user.GetUserGamification)
		users.GET("/:id/comunidades", c.user.ListUserCommunities)
	}
}

func (a *App) registerChallengeRoutes(router *gin.Engine, c *controllers) {
	challenges := router.Group("/microrretos")
	{
		challenges.POST("/", c.challenge.CreateChallenge)
		challenges.GET("/", c.challenge.ListChallenges)
		challenges.GET("/:id", c.challenge.GetChallenge)
		challenges.PUT("/:id", c.challenge.UpdateChallenge)
		challenges.DELETE("/:id", c.challenge.DeleteChallenge)
	}
}

func (a *App) registerProgressRoutes(router *gin.Engine, c *controllers) {
	progress := router.Group("/progresos")
	{
		progress.POST("/", c.progress.CreateProgress)
		progress.GET("/", c.progress.ListProgress)
		progress.GET("/:id", c.progress.GetProgress)
		progress.PUT("/:id", c.progress.UpdateProgress)
		progress.PATCH("/:id/completado", c.progress.SetCompleted)
		progress.DELETE("/:id", c.progress.DeleteProgress)
	}
}

func (a *App) registerGamificationRoutes(router *gin.Engine, c *controllers) {
	gamification := router.Group("/gamificacion")
	{
		gamification.POST("/", c.gamification.CreateRecord)
		gamification.GET("/", c.gamification.ListRecords)
		gamification.GET("/:id", c.gamification.GetRecord)
		gamification.PUT("/:id", c.gamification.UpdateRecord)
		gamification.DELETE("/:id", c.gamification.DeleteRecord)
		gamification.PATCH("/usuario/:user_id/puntos", c.gamification.AddPoints)
		gamification.PATCH("/usuario/:user_id/badge", c.gamification.SetBadge)
	}
}

func (a *App) registerCommunityRoutes(router *gin.Engine, c *controllers) {
	communities := router.Group("/comunidades")
	{
		communities.POST("/", c.community.CreateCommunity)
		communities.GET("/", c.community.ListCommunities)
		communities.GET("/:id", c.community.GetCommunity)
		communities.PUT("/:id", c.community.UpdateCommunity)
		communities.DELETE("/:id", c.community.DeleteCommunity)
	}

	// 成员管理
	membership := router.Group("/comunidad")
	{
		membership.GET("/:id/participantes", c.community.ListMembers)
		membership.POST("/:id/agregar/:user_id", c.community.AddMember)
		membership.DELETE("/:id/remover/:user_id", c.community.RemoveMember)
	}
}

func (a *App) registerReportRoutes(router *gin.Engine, c *controllers) {
	reports := router.Group("/reportes")
	{
		reports.GET("/ranking", c.report.RankingPDF)
		reports.GET("/ranking/json", c.report.RankingJSON)
	}
}

func (a *App) registerWebRoutes(router *gin.Engine, c *controllers) {
	pages := router.Group("/web")
	{
		pages.GET("/", c.web.Index)
		pages.GET("/usuarios", c.web.Users)
		pages.POST("/usuarios", c.web.CreateUser)
		pages.GET("/microrretos", c.web.Challenges)
		pages.POST("/microrretos", c.web.CreateChallenge)
		pages.GET("/comunidades", c.web.Communities)
		pages.GET("/comunidades/:id", c.web.Community)
		pages.POST("/comunidades/:id/participantes", c.web.AddMember)
		pages.GET("/ranking", c.web.Ranking)
	}
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/web/")
	})
}
