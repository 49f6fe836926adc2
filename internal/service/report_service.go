package service

import (
	"bytes"
	"context"
	"fmt"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/util"
	"microhabits_backend/pkg/logger"
	"microhabits_backend/pkg/monitoring"
	"microhabits_backend/pkg/tracing"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// 版面坐标，单位 pt，原点在左上角（Letter 纸 612x792）
const (
	rankingTitleY     = 42.0
	rankingHeaderY    = 92.0
	rankingFirstRowY  = 122.0
	rankingRowStep    = 25.0
	rankingMaxY       = 742.0
	rankingPageStartY = 42.0

	colPositionX = 50.0
	colUserX     = 120.0
	colPointsX   = 300.0
	colBadgeX    = 400.0
)

// RankingFileName 下载时使用的文件名
const RankingFileName = "ranking_usuarios.pdf"

// RankingRow 排行榜中的一行
type RankingRow struct {
	Position int    `json:"puesto"`
	UserID   uint   `json:"usuario_id"`
	Name     string `json:"usuario"`
	Points   int    `json:"puntos"`
	Badge    string `json:"badge"`
}

// PlacedRow 带纵坐标的行
type PlacedRow struct {
	RankingRow
	Y float64
}

// RankingPage 单页内容，只有第一页带标题与表头
type RankingPage struct {
	WithHeader bool
	Rows       []PlacedRow
}

// RankingReport 生成结果；URL 仅在开启归档时有值
type RankingReport struct {
	Rows    []RankingRow
	Content []byte
	URL     string
}

type ReportService struct {
	GamificationRepo *repository.GamificationRepository
	UserRepo         *repository.UserRepository
	Storage          *StorageService
	Title            string
	Archive          bool
}

func NewReportService(
	gamificationRepo *repository.GamificationRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	title string,
	archive bool,
) *ReportService {
	if title == "" {
		title = "Ranking de Usuarios por Puntos"
	}
	return &ReportService{
		GamificationRepo: gamificationRepo,
		UserRepo:         userRepo,
		Storage:          storage,
		Title:            title,
		Archive:          archive,
	}
}

// Ranking 按 gamificacion.puntos 降序；找不到对应用户的记录直接跳过
func (s *ReportService) Ranking() ([]RankingRow, error) {
	records, err := s.GamificationRepo.FindAllOrderByPoints()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, util.ErrNoReportData
	}

	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	rows := make([]RankingRow, 0, len(records))
	for _, record := range records {
		user, ok := users[record.UserID]
		if !ok {
			continue
		}
		rows = append(rows, RankingRow{
			Position: len(rows) + 1,
			UserID:   record.UserID,
			Name:     user.Name,
			Points:   record.Points,
			Badge:    record.Badge,
		})
	}
	return rows, nil
}

// PlanRankingPages 计算每行所在页与纵坐标，超过底部边距即换页
func PlanRankingPages(rows []RankingRow) []RankingPage {
	pages := []RankingPage{{WithHeader: true}}
	y := rankingFirstRowY

	for _, row := range rows {
		if y > rankingMaxY {
			pages = append(pages, RankingPage{})
			y = rankingPageStartY
		}
		current := &pages[len(pages)-1]
		current.Rows = append(current.Rows, PlacedRow{RankingRow: row, Y: y})
		y += rankingRowStep
	}
	return pages
}

// RenderRankingPDF 按分页计划绘制 PDF
func RenderRankingPDF(title string, pages []RankingPage) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		pdf.AddPage()
		if page.WithHeader {
			pdf.SetFont("Helvetica", "B", 16)
			pdf.Text(colPositionX, rankingTitleY, tr(title))

			pdf.SetFont("Helvetica", "B", 12)
			pdf.Text(colPositionX, rankingHeaderY, "Puesto")
			pdf.Text(colUserX, rankingHeaderY, "Usuario")
			pdf.Text(colPointsX, rankingHeaderY, "Puntos")
			pdf.Text(colBadgeX, rankingHeaderY, "Badge")
		}

		pdf.SetFont("Helvetica", "", 11)
		for _, row := range page.Rows {
			pdf.Text(colPositionX, row.Y, strconv.Itoa(row.Position))
			pdf.Text(colUserX, row.Y, tr(row.Name))
			pdf.Text(colPointsX, row.Y, strconv.Itoa(row.Points))
			pdf.Text(colBadgeX, row.Y, tr(row.Badge))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ranking pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateRanking 生成排行榜 PDF，开启归档时同时上传到存储
func (s *ReportService) GenerateRanking(ctx context.Context) (*RankingReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "report.ranking")
	defer span.End()

	rows, err := s.Ranking()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("ranking.rows", len(rows)))

	pages := PlanRankingPages(rows)
	content, err := RenderRankingPDF(s.Title, pages)
	if err != nil {
		return nil, err
	}

	report := &RankingReport{Rows: rows, Content: content}

	if s.Archive && s.Storage != nil {
		name := fmt.Sprintf("reportes/%s_%s", time.Now().UTC().Format("20060102T150405"), RankingFileName)
		url, err := s.Storage.Upload(ctx, name, bytes.NewReader(content), int64(len(content)), util.MimePDF)
		if err != nil {
			return nil, fmt.Errorf("archive ranking report: %w", err)
		}
		report.URL = url
	}

	monitoring.ReportsGenerated.WithLabelValues("pdf").Inc()
	logger.Log.Info("Ranking report generated",
		zap.Int("rows", len(rows)),
		zap.Int("pages", len(pages)),
		zap.String("url", report.URL),
	)
	return report, nil
}
