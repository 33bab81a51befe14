package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dietlog/internal/workbook"
)

// MaxMealNotesRunes 是单条饮食记录备注的最大长度
const MaxMealNotesRunes = 500

var (
	// ErrFoodNameRequired 食物名称为空时返回，不会写入任何数据
	ErrFoodNameRequired = errors.New("food name is required")
	// ErrNegativeAmount 数值字段小于 0 时返回
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrMealNotesTooLong 备注超出长度限制时返回
	ErrMealNotesTooLong = errors.New("meal notes too long")
)

// MealInput 定义"添加食物"表单提交的字段
type MealInput struct {
	EatenAt  time.Time
	FoodName string
	Grams    float64
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Notes    string
}

// MealService 负责 Meals 表的追加与读取
type MealService struct {
	sheet workbook.Worksheet
	goals *GoalService
}

// NewMealService 构造 MealService；goals 用于在写入时复制当月目标快照
func NewMealService(sheet workbook.Worksheet, goals *GoalService) *MealService {
	return &MealService{sheet: sheet, goals: goals}
}

// Append 校验输入后向 Meals 表末尾追加一行。重复提交会产生重复行。
func (s *MealService) Append(ctx context.Context, input MealInput) (*MealEntry, error) {
	input.Notes = normalizeNewlines(input.Notes)
	if err := validateMealInput(input); err != nil {
		return nil, err
	}

	calorieGoal, proteinGoal := s.goalSnapshot(ctx, input.EatenAt)

	entry := MealEntry{
		Date:             input.EatenAt.Format(DateLayout),
		Time:             input.EatenAt.Format(TimeLayout),
		FoodName:         strings.TrimSpace(input.FoodName),
		Grams:            round1(input.Grams),
		Protein:          round1(input.Protein),
		Carbs:            round1(input.Carbs),
		Fat:              round1(input.Fat),
		Calories:         round1(input.Calories),
		DailyCalorieGoal: calorieGoal,
		DailyProteinGoal: proteinGoal,
		Notes:            input.Notes,
	}

	if err := s.sheet.AppendRow(ctx, entry.values()); err != nil {
		return nil, fmt.Errorf("append meal: %w", err)
	}
	return &entry, nil
}

// List 返回 Meals 表中全部可解析的记录
func (s *MealService) List(ctx context.Context) ([]MealEntry, bool, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list meals: %w", err)
	}
	table, err := parseMeals(rows)
	if err != nil {
		return nil, false, fmt.Errorf("parse meals: %w", err)
	}
	return table.entries, table.fiberTracked, nil
}

// goalSnapshot 读取写入当日所在月份的目标；不存在或读取失败时使用表单默认值
func (s *MealService) goalSnapshot(ctx context.Context, day time.Time) (float64, float64) {
	if s.goals == nil {
		return DefaultCalorieGoal, DefaultProteinGoal
	}
	goal, err := s.goals.ForMonth(ctx, MonthLabel(day))
	if err != nil {
		log.Printf("goal snapshot for %s unavailable: %v", MonthLabel(day), err)
		return DefaultCalorieGoal, DefaultProteinGoal
	}
	if goal == nil || !goal.valid() {
		return DefaultCalorieGoal, DefaultProteinGoal
	}
	return goal.CalorieGoal, goal.ProteinGoal
}

func validateMealInput(input MealInput) error {
	if strings.TrimSpace(input.FoodName) == "" {
		return ErrFoodNameRequired
	}
	for _, v := range []float64{input.Grams, input.Calories, input.Protein, input.Carbs, input.Fat} {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	if utf8.RuneCountInString(input.Notes) > MaxMealNotesRunes {
		return fmt.Errorf("%w: at most %d characters", ErrMealNotesTooLong, MaxMealNotesRunes)
	}
	return nil
}
