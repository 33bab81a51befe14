package service

import (
	"context"
	"fmt"

	"github.com/dietlog/internal/workbook"
)

// 工作表名称
const (
	MealsSheet = "Meals"
	GoalsSheet = "Goals"
	NotesSheet = "Daily_Notes"
)

// 列名
const (
	colDate             = "date"
	colTime             = "time"
	colFoodName         = "food_name"
	colGrams            = "grams"
	colProtein          = "protein_g"
	colCarbs            = "carbs_g"
	colFat              = "fat_g"
	colCalories         = "calories"
	colDailyCalorieGoal = "daily_calorie_goal"
	colDailyProteinGoal = "daily_protein_goal"
	colNotes            = "notes"

	colMonthYear   = "month_year"
	colCalorieGoal = "calorie_goal"
	colProteinGoal = "protein_goal"
	colCreatedAt   = "created_at"

	colNote = "note"

	// colCaloriesLegacy 是旧版表头中热量列的名称，读取时作为 calories 的别名
	colCaloriesLegacy = "calories_kcal"
	// colFiber 为可选列，表头中存在时才汇总膳食纤维
	colFiber = "fiber_g"
)

// MealsHeader 是 Meals 工作表的表头
var MealsHeader = []string{
	colDate, colTime, colFoodName, colGrams, colProtein, colCarbs, colFat, colCalories,
	colDailyCalorieGoal, colDailyProteinGoal, colNotes,
}

// GoalsHeader 是 Goals 工作表的表头
var GoalsHeader = []string{colMonthYear, colCalorieGoal, colProteinGoal, colCreatedAt}

// NotesHeader 是 Daily_Notes 工作表的表头
var NotesHeader = []string{colDate, colNote, colCreatedAt}

// Tables 汇总三个工作表的句柄，启动时创建一次后注入各个服务
type Tables struct {
	Meals workbook.Worksheet
	Goals workbook.Worksheet
	Notes workbook.Worksheet
}

// OpenTables 依次确保 Meals、Goals、Daily_Notes 存在，任一失败即返回错误
func OpenTables(ctx context.Context, wb workbook.Workbook) (*Tables, error) {
	meals, err := workbook.EnsureWorksheet(ctx, wb, MealsSheet, MealsHeader)
	if err != nil {
		return nil, err
	}
	goals, err := workbook.EnsureWorksheet(ctx, wb, GoalsSheet, GoalsHeader)
	if err != nil {
		return nil, err
	}
	notes, err := workbook.EnsureWorksheet(ctx, wb, NotesSheet, NotesHeader)
	if err != nil {
		return nil, err
	}
	return &Tables{Meals: meals, Goals: goals, Notes: notes}, nil
}

// ByName 根据预览页使用的短名称返回工作表
func (t *Tables) ByName(name string) (workbook.Worksheet, bool) {
	switch name {
	case "meals":
		return t.Meals, true
	case "goals":
		return t.Goals, true
	case "notes":
		return t.Notes, true
	}
	return nil, false
}

// TablePreview 是工作表的原始内容，用于预览页
type TablePreview struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Preview 读取工作表全部内容，表头去除首尾空白，按表头宽度补齐每一行
func Preview(ctx context.Context, ws workbook.Worksheet) (TablePreview, error) {
	preview := TablePreview{Title: ws.Title()}

	rows, err := ws.Rows(ctx)
	if err != nil {
		return preview, fmt.Errorf("preview %s: %w", ws.Title(), err)
	}
	if len(rows) == 0 {
		return preview, nil
	}

	preview.Header = workbook.NewHeader(rows[0]).Names()
	for _, row := range rows[1:] {
		padded := make([]string, len(preview.Header))
		copy(padded, row)
		preview.Rows = append(preview.Rows, padded)
	}
	return preview, nil
}
