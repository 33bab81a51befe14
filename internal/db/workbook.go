package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/dietlog/internal/workbook"
	"gorm.io/gorm"
)

// Workbook 用 SQLite 实现 workbook.Workbook，供本地开发和测试使用
type Workbook struct {
	db *gorm.DB
}

// NewWorkbook 构造 Workbook
func NewWorkbook(gdb *gorm.DB) *Workbook {
	return &Workbook{db: gdb}
}

// Worksheet 根据标题查找工作表
func (w *Workbook) Worksheet(ctx context.Context, title string) (workbook.Worksheet, error) {
	var record Worksheet
	if err := w.db.WithContext(ctx).Where("title = ?", title).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", workbook.ErrWorksheetNotFound, title)
		}
		return nil, fmt.Errorf("find worksheet: %w", err)
	}
	return &sheet{db: w.db, id: record.ID, title: record.Title}, nil
}

// AddWorksheet 新建工作表
func (w *Workbook) AddWorksheet(ctx context.Context, title string, rows, cols int) (workbook.Worksheet, error) {
	record := Worksheet{Title: title, RowCount: rows, ColumnCount: cols}
	if err := w.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create worksheet: %w", err)
	}
	return &sheet{db: w.db, id: record.ID, title: record.Title}, nil
}

type sheet struct {
	db    *gorm.DB
	id    uint
	title string
}

func (s *sheet) Title() string {
	return s.title
}

func (s *sheet) Rows(ctx context.Context) ([][]string, error) {
	var records []Row
	if err := s.db.WithContext(ctx).
		Where("worksheet_id = ?", s.id).
		Order("position ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Cells)
	}
	return rows, nil
}

func (s *sheet) AppendRow(ctx context.Context, values []any) error {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = workbook.FormatCell(v)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&Row{}).
			Where("worksheet_id = ?", s.id).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return fmt.Errorf("find last row: %w", err)
		}

		row := Row{WorksheetID: s.id, Position: last + 1, Cells: cells}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("append row: %w", err)
		}
		return nil
	})
}

func (s *sheet) UpdateCell(ctx context.Context, position int, column string, value any) error {
	col := workbook.ColumnIndex(column)
	if col < 0 {
		return fmt.Errorf("invalid column %q", column)
	}

	var row Row
	if err := s.db.WithContext(ctx).
		Where("worksheet_id = ? AND position = ?", s.id, position).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s row %d", workbook.ErrRowOutOfRange, s.title, position)
		}
		return fmt.Errorf("find row: %w", err)
	}

	for len(row.Cells) <= col {
		row.Cells = append(row.Cells, "")
	}
	row.Cells[col] = workbook.FormatCell(value)

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	return nil
}
