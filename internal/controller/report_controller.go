package controller

import (
	"fmt"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"microhabits_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReportURLHeader 归档开启时返回报表在存储中的地址
const ReportURLHeader = "X-Report-URL"

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// RankingPDF godoc
// @Summary 下载积分排行榜 PDF
// @Tags reportes
// @Produce application/pdf
// @Success 200 {file} file "ranking_usuarios.pdf"
// @Failure 404 {object} util.Response "没有数据"
// @Router /reportes/ranking [get]
func (c *ReportController) RankingPDF(ctx *gin.Context) {
	report, err := c.ReportService.GenerateRanking(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if report.URL != "" {
		ctx.Header(ReportURLHeader, report.URL)
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.RankingFileName))
	ctx.Data(http.StatusOK, util.MimePDF, report.Content)
}

// RankingJSON godoc
// @Summary 积分排行榜
// @Tags reportes
// @Produce json
// @Success 200 {object} util.Response{data=[]service.RankingRow}
// @Failure 404 {object} util.Response "没有数据"
// @Router /reportes/ranking/json [get]
func (c *ReportController) RankingJSON(ctx *gin.Context) {
	rows, err := c.ReportService.Ranking()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	monitoring.ReportsGenerated.WithLabelValues("json").Inc()
	util.Success(ctx, rows)
}
