package service

import (
	"context"
	"log"
	"time"
)

// SummaryState 描述每日汇总的结果状态
type SummaryState string

const (
	// SummaryNoEntries 当天没有任何饮食记录，不做目标比较
	SummaryNoEntries SummaryState = "no_entries"
	// SummaryNoGoal 有记录但当月未设置目标
	SummaryNoGoal SummaryState = "no_goal"
	// SummaryEvaluated 已与当月目标比较
	SummaryEvaluated SummaryState = "evaluated"
)

// GoalStatus 是单项目标的比较结果
type GoalStatus string

const (
	StatusOK       GoalStatus = "ok"
	StatusExceeded GoalStatus = "exceeded"
	StatusLow      GoalStatus = "low"
)

// NutritionTotals 为当天各营养素之和
type NutritionTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
}

// DailySummary 是某一天的汇总视图
type DailySummary struct {
	Date  string
	Month string
	State SummaryState
	// TableEmpty 表示 Meals 表中还没有任何记录
	TableEmpty   bool
	Entries      []MealEntry
	Totals       NutritionTotals
	FiberTracked bool
	Goal         *MonthlyGoal
	// CalorieStatus 热量是上限：超过目标为 exceeded
	CalorieStatus GoalStatus
	// ProteinStatus 蛋白质是下限：低于目标为 low
	ProteinStatus GoalStatus
	// LoadErr 记录读取失败的原因，汇总此时退化为空结果
	LoadErr error
}

// Summarize 根据全部饮食记录与月度目标计算某一天的汇总，不访问存储
func Summarize(day time.Time, meals []MealEntry, fiberTracked bool, goals []MonthlyGoal) DailySummary {
	summary := DailySummary{
		Date:         day.Format(DateLayout),
		Month:        MonthLabel(day),
		State:        SummaryNoEntries,
		TableEmpty:   len(meals) == 0,
		FiberTracked: fiberTracked,
	}

	for _, meal := range meals {
		if meal.Date != summary.Date {
			continue
		}
		summary.Entries = append(summary.Entries, meal)
		summary.Totals.Calories += meal.Calories
		summary.Totals.Protein += meal.Protein
		summary.Totals.Carbs += meal.Carbs
		summary.Totals.Fat += meal.Fat
		summary.Totals.Fiber += meal.Fiber
	}
	if len(summary.Entries) == 0 {
		return summary
	}

	goal := findGoal(goals, summary.Month)
	if goal == nil || !goal.valid() {
		summary.State = SummaryNoGoal
		return summary
	}

	summary.State = SummaryEvaluated
	summary.Goal = goal
	summary.CalorieStatus = CompareCalories(summary.Totals.Calories, goal.CalorieGoal)
	summary.ProteinStatus = CompareProtein(summary.Totals.Protein, goal.ProteinGoal)
	return summary
}

// CompareCalories 热量不超过目标即为 ok
func CompareCalories(total, goal float64) GoalStatus {
	if total > goal {
		return StatusExceeded
	}
	return StatusOK
}

// CompareProtein 蛋白质达到或超过目标即为 ok
func CompareProtein(total, goal float64) GoalStatus {
	if total < goal {
		return StatusLow
	}
	return StatusOK
}

// SummaryService 读取 Meals 与 Goals 并计算每日汇总
type SummaryService struct {
	meals *MealService
	goals *GoalService
}

// NewSummaryService 构造 SummaryService
func NewSummaryService(meals *MealService, goals *GoalService) *SummaryService {
	return &SummaryService{meals: meals, goals: goals}
}

// Daily 返回指定日期的汇总。读取失败不会向上返回错误，而是退化为空数据集，
// 失败原因保存在 LoadErr 中供页面展示。
func (s *SummaryService) Daily(ctx context.Context, day time.Time) DailySummary {
	meals, fiberTracked, err := s.meals.List(ctx)
	if err != nil {
		log.Printf("daily summary %s: %v", day.Format(DateLayout), err)
		summary := Summarize(day, nil, false, nil)
		summary.LoadErr = err
		return summary
	}

	var goals []MonthlyGoal
	if hasEntriesOn(meals, day.Format(DateLayout)) {
		goals, err = s.goals.List(ctx)
		if err != nil {
			log.Printf("daily summary goals %s: %v", MonthLabel(day), err)
			summary := Summarize(day, meals, fiberTracked, nil)
			summary.LoadErr = err
			return summary
		}
	}

	return Summarize(day, meals, fiberTracked, goals)
}

func hasEntriesOn(meals []MealEntry, date string) bool {
	for _, meal := range meals {
		if meal.Date == date {
			return true
		}
	}
	return false
}
