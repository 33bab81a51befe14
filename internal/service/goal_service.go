package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dietlog/internal/workbook"
)

const (
	// MinCalorieGoal 是每日热量目标的下限
	MinCalorieGoal = 500
	// DefaultCalorieGoal 与 DefaultProteinGoal 是表单默认值，也是没有月度目标时的快照值
	DefaultCalorieGoal = 1700
	DefaultProteinGoal = 80
)

var (
	// ErrInvalidMonth 月份标签不是 YYYY-MM 格式时返回
	ErrInvalidMonth = errors.New("invalid month label")
	// ErrInvalidGoal 目标数值超出允许范围时返回
	ErrInvalidGoal = errors.New("invalid goal")
)

// UpsertResult 说明 upsert 实际执行的是新建还是更新
type UpsertResult string

const (
	UpsertCreated UpsertResult = "created"
	UpsertUpdated UpsertResult = "updated"
)

// GoalInput 定义设置月度目标时的输入
type GoalInput struct {
	MonthYear   string
	CalorieGoal float64
	ProteinGoal float64
}

// GoalService 负责 Goals 表的读取与 upsert
type GoalService struct {
	sheet workbook.Worksheet
	now   func() time.Time
}

// NewGoalService 构造 GoalService
func NewGoalService(sheet workbook.Worksheet) *GoalService {
	return &GoalService{sheet: sheet, now: time.Now}
}

// List 按表中顺序返回全部月度目标
func (s *GoalService) List(ctx context.Context) ([]MonthlyGoal, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals, err := parseGoals(rows)
	if err != nil {
		return nil, fmt.Errorf("parse goals: %w", err)
	}
	return goals, nil
}

// ForMonth 返回第一条匹配月份的目标，没有时返回 nil
func (s *GoalService) ForMonth(ctx context.Context, month string) (*MonthlyGoal, error) {
	goals, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return findGoal(goals, month), nil
}

// Upsert 顺序扫描 Goals 表，更新第一条 month_year 匹配的行；没有匹配则追加新行。
// 表中已有重复月份时只会更新第一条。写入的列按表头名称定位。
func (s *GoalService) Upsert(ctx context.Context, input GoalInput) (UpsertResult, error) {
	input.MonthYear = strings.TrimSpace(input.MonthYear)
	if err := validateGoalInput(input); err != nil {
		return "", err
	}

	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("list goals: %w", err)
	}
	goals, err := parseGoals(rows)
	if err != nil {
		return "", fmt.Errorf("parse goals: %w", err)
	}
	header := workbook.NewHeader(GoalsHeader)
	if len(rows) > 0 {
		header = workbook.NewHeader(rows[0])
	}

	createdAt := s.now().Format(time.RFC3339)
	values := map[string]any{
		colMonthYear:   input.MonthYear,
		colCalorieGoal: input.CalorieGoal,
		colProteinGoal: input.ProteinGoal,
		colCreatedAt:   createdAt,
	}

	for i, goal := range goals {
		if goal.MonthYear != input.MonthYear {
			continue
		}

		// 表头占第 1 行，记录从第 2 行开始
		row := i + 2
		for _, name := range []string{colCalorieGoal, colProteinGoal, colCreatedAt} {
			idx, ok := header.Index(name)
			if !ok {
				return "", fmt.Errorf("update goal %s: %w: missing %s", input.MonthYear, workbook.ErrSchemaMismatch, name)
			}
			if err := s.sheet.UpdateCell(ctx, row, workbook.ColumnLetter(idx), values[name]); err != nil {
				return "", fmt.Errorf("update goal %s: %w", input.MonthYear, err)
			}
		}
		return UpsertUpdated, nil
	}

	if err := s.sheet.AppendRow(ctx, headerOrderedRow(header, values)); err != nil {
		return "", fmt.Errorf("create goal %s: %w", input.MonthYear, err)
	}
	return UpsertCreated, nil
}

// headerOrderedRow 按表头顺序排列要追加的值，表头中未知的列留空
func headerOrderedRow(header workbook.Header, values map[string]any) []any {
	names := header.Names()
	row := make([]any, len(names))
	for i, name := range names {
		if v, ok := values[name]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}

func validateGoalInput(input GoalInput) error {
	if _, err := ParseMonthLabel(input.MonthYear); err != nil {
		return err
	}
	if input.CalorieGoal < MinCalorieGoal {
		return fmt.Errorf("%w: calorie goal must be at least %d", ErrInvalidGoal, MinCalorieGoal)
	}
	if input.ProteinGoal < 0 {
		return fmt.Errorf("%w: protein goal must not be negative", ErrInvalidGoal)
	}
	return nil
}

func findGoal(goals []MonthlyGoal, month string) *MonthlyGoal {
	for i := range goals {
		if goals[i].MonthYear == month {
			return &goals[i]
		}
	}
	return nil
}
