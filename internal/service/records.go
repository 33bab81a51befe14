package service

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/dietlog/internal/workbook"
)

const (
	// DateLayout 是日期列的格式
	DateLayout = "2006-01-02"
	// TimeLayout 是时间列的格式
	TimeLayout = "15:04:05"
	// MonthLayout 是月份标签的格式
	MonthLayout = "2006-01"
)

// MealEntry 对应 Meals 表中的一行，写入后不再修改
type MealEntry struct {
	Date             string
	Time             string
	FoodName         string
	Grams            float64
	Protein          float64
	Carbs            float64
	Fat              float64
	Calories         float64
	Fiber            float64
	DailyCalorieGoal float64
	DailyProteinGoal float64
	Notes            string
}

// MonthlyGoal 对应 Goals 表中的一行，以 MonthYear 为逻辑主键
type MonthlyGoal struct {
	MonthYear   string
	CalorieGoal float64
	ProteinGoal float64
	CreatedAt   string
}

// DailyNote 对应 Daily_Notes 表中的一行
type DailyNote struct {
	Date      string
	Note      string
	CreatedAt string
}

func (m MealEntry) values() []any {
	return []any{
		m.Date,
		m.Time,
		m.FoodName,
		round1(m.Grams),
		round1(m.Protein),
		round1(m.Carbs),
		round1(m.Fat),
		round1(m.Calories),
		m.DailyCalorieGoal,
		m.DailyProteinGoal,
		m.Notes,
	}
}

// mealTable 是解析后的 Meals 表；fiberTracked 表示表头含有 fiber_g 列
type mealTable struct {
	entries      []MealEntry
	fiberTracked bool
}

// parseMeals 按表头解析 Meals 表。数值无法解析的行会被跳过并记录日志。
func parseMeals(rows [][]string) (mealTable, error) {
	if len(rows) == 0 {
		return mealTable{}, nil
	}

	header := workbook.NewHeader(rows[0])
	if err := header.Require(colDate, colFoodName, colProtein, colCarbs, colFat); err != nil {
		return mealTable{}, err
	}
	caloriesIdx, ok := header.Index(colCalories, colCaloriesLegacy)
	if !ok {
		return mealTable{}, fmt.Errorf("%w: missing %s", workbook.ErrSchemaMismatch, colCalories)
	}

	idx := func(name string) int {
		i, _ := header.Index(name)
		return i
	}
	fiberIdx, fiberTracked := header.Index(colFiber)

	result := mealTable{entries: make([]MealEntry, 0, len(rows)-1), fiberTracked: fiberTracked}
	for n, row := range rows[1:] {
		entry := MealEntry{
			Date:     workbook.Cell(row, idx(colDate)),
			Time:     workbook.Cell(row, idx(colTime)),
			FoodName: workbook.Cell(row, idx(colFoodName)),
			Notes:    workbook.Cell(row, idx(colNotes)),
		}

		numbers := []struct {
			dst   *float64
			index int
		}{
			{&entry.Grams, idx(colGrams)},
			{&entry.Protein, idx(colProtein)},
			{&entry.Carbs, idx(colCarbs)},
			{&entry.Fat, idx(colFat)},
			{&entry.Calories, caloriesIdx},
			{&entry.Fiber, fiberIdx},
			{&entry.DailyCalorieGoal, idx(colDailyCalorieGoal)},
			{&entry.DailyProteinGoal, idx(colDailyProteinGoal)},
		}

		valid := true
		for _, num := range numbers {
			v, err := workbook.ParseNumber(workbook.Cell(row, num.index))
			if err != nil {
				log.Printf("skip %s row %d: %v", MealsSheet, n+2, err)
				valid = false
				break
			}
			*num.dst = v
		}
		if valid {
			result.entries = append(result.entries, entry)
		}
	}

	return result, nil
}

// parseGoals 按表头解析 Goals 表，保持表中顺序
func parseGoals(rows [][]string) ([]MonthlyGoal, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	header := workbook.NewHeader(rows[0])
	if err := header.Require(GoalsHeader...); err != nil {
		return nil, err
	}
	monthIdx, _ := header.Index(colMonthYear)
	calIdx, _ := header.Index(colCalorieGoal)
	protIdx, _ := header.Index(colProteinGoal)
	createdIdx, _ := header.Index(colCreatedAt)

	goals := make([]MonthlyGoal, 0, len(rows)-1)
	for n, row := range rows[1:] {
		calories, err := workbook.ParseNumber(workbook.Cell(row, calIdx))
		if err != nil {
			log.Printf("skip %s row %d: %v", GoalsSheet, n+2, err)
			calories = math.NaN()
		}
		protein, err := workbook.ParseNumber(workbook.Cell(row, protIdx))
		if err != nil {
			log.Printf("skip %s row %d: %v", GoalsSheet, n+2, err)
			protein = math.NaN()
		}
		goals = append(goals, MonthlyGoal{
			MonthYear:   workbook.Cell(row, monthIdx),
			CalorieGoal: calories,
			ProteinGoal: protein,
			CreatedAt:   workbook.Cell(row, createdIdx),
		})
	}
	return goals, nil
}

// valid 报告目标值是否可用于比较
func (g MonthlyGoal) valid() bool {
	return !math.IsNaN(g.CalorieGoal) && !math.IsNaN(g.ProteinGoal)
}

// parseNotes 按表头解析 Daily_Notes 表
func parseNotes(rows [][]string) ([]DailyNote, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	header := workbook.NewHeader(rows[0])
	if err := header.Require(NotesHeader...); err != nil {
		return nil, err
	}
	dateIdx, _ := header.Index(colDate)
	noteIdx, _ := header.Index(colNote)
	createdIdx, _ := header.Index(colCreatedAt)

	notes := make([]DailyNote, 0, len(rows)-1)
	for _, row := range rows[1:] {
		notes = append(notes, DailyNote{
			Date:      workbook.Cell(row, dateIdx),
			Note:      strings.TrimSpace(cellRaw(row, noteIdx)),
			CreatedAt: workbook.Cell(row, createdIdx),
		})
	}
	return notes, nil
}

// cellRaw 与 workbook.Cell 相同，但保留内部换行供 Markdown 渲染
func cellRaw(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// MonthLabel 返回日期对应的月份标签 YYYY-MM
func MonthLabel(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonthLabel 校验并解析月份标签
func ParseMonthLabel(label string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(label))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, label)
	}
	return t, nil
}

// MonthOptions 返回当前月份及之前 count-1 个月的标签，按时间倒序
func MonthOptions(now time.Time, count int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	options := make([]string, 0, count)
	for i := 0; i < count; i++ {
		options = append(options, MonthLabel(first.AddDate(0, -i, 0)))
	}
	return options
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
