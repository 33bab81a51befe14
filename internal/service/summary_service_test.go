package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dietlog/internal/workbook"
)

var summaryDay = time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeSumsEntriesForDate(t *testing.T) {
	meals := []MealEntry{
		{Date: "2024-05-12", FoodName: "Rice", Calories: 100.4, Protein: 10.25, Carbs: 20, Fat: 1.5},
		{Date: "2024-05-12", FoodName: "Egg", Calories: 50.0, Protein: 5.0, Carbs: 0.5, Fat: 4},
		{Date: "2024-05-11", FoodName: "Cake", Calories: 900, Protein: 3},
	}

	summary := Summarize(summaryDay, meals, false, nil)

	if len(summary.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.Entries))
	}
	if !almostEqual(summary.Totals.Calories, 150.4) {
		t.Fatalf("expected calories 150.4, got %v", summary.Totals.Calories)
	}
	if !almostEqual(summary.Totals.Protein, 15.25) {
		t.Fatalf("expected protein 15.25, got %v", summary.Totals.Protein)
	}
	if !almostEqual(summary.Totals.Carbs, 20.5) || !almostEqual(summary.Totals.Fat, 5.5) {
		t.Fatalf("unexpected carbs/fat totals: %+v", summary.Totals)
	}
	if summary.State != SummaryNoGoal {
		t.Fatalf("expected no_goal state, got %s", summary.State)
	}
	if summary.Goal != nil || summary.CalorieStatus != "" || summary.ProteinStatus != "" {
		t.Fatalf("expected no evaluation without goal, got %+v", summary)
	}
}

func TestSummarizeNoEntries(t *testing.T) {
	goals := []MonthlyGoal{{MonthYear: "2024-05", CalorieGoal: 1700, ProteinGoal: 80}}

	summary := Summarize(summaryDay, []MealEntry{{Date: "2024-05-10", Calories: 300}}, false, goals)

	if summary.State != SummaryNoEntries {
		t.Fatalf("expected no_entries, got %s", summary.State)
	}
	if summary.TableEmpty {
		t.Fatal("table has rows, TableEmpty should be false")
	}
	if summary.Goal != nil || summary.CalorieStatus != "" {
		t.Fatal("comparison must not run without entries")
	}

	if empty := Summarize(summaryDay, nil, false, goals); !empty.TableEmpty {
		t.Fatal("expected TableEmpty for an empty meal table")
	}
}

func TestSummarizeGoalComparisonIsAsymmetric(t *testing.T) {
	goals := []MonthlyGoal{
		{MonthYear: "2024-04", CalorieGoal: 1000, ProteinGoal: 10},
		{MonthYear: "2024-05", CalorieGoal: 1700, ProteinGoal: 80},
	}

	cases := []struct {
		name     string
		calories float64
		protein  float64
		calorie  GoalStatus
		proteinS GoalStatus
	}{
		{name: "exactly at both goals", calories: 1700, protein: 80, calorie: StatusOK, proteinS: StatusOK},
		{name: "protein just under", calories: 1200, protein: 79.9, calorie: StatusOK, proteinS: StatusLow},
		{name: "calories just over", calories: 1700.1, protein: 120, calorie: StatusExceeded, proteinS: StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meals := []MealEntry{{Date: "2024-05-12", Calories: tc.calories, Protein: tc.protein}}
			summary := Summarize(summaryDay, meals, false, goals)

			if summary.State != SummaryEvaluated {
				t.Fatalf("expected evaluated state, got %s", summary.State)
			}
			if summary.Goal == nil || summary.Goal.MonthYear != "2024-05" {
				t.Fatalf("expected goal for 2024-05, got %+v", summary.Goal)
			}
			if summary.CalorieStatus != tc.calorie {
				t.Fatalf("calorie status = %s, want %s", summary.CalorieStatus, tc.calorie)
			}
			if summary.ProteinStatus != tc.proteinS {
				t.Fatalf("protein status = %s, want %s", summary.ProteinStatus, tc.proteinS)
			}
		})
	}
}

func TestSummaryDailyReadsFiberAndLegacyCalories(t *testing.T) {
	_, tables := setupDietTestDB(t)
	ctx := context.Background()

	legacy := &stubSheet{title: MealsSheet, rows: [][]string{
		{"date", "food_name", "calories_kcal", "protein_g", "carbs_g", "fat_g", "fiber_g"},
		{"2024-05-12", "Oats", "150", "5", "27", "3", "4"},
		{"2024-05-12", "Berries", "40", "", "10", "0", "2.5"},
		{"2024-05-12", "Broken", "n/a", "1", "1", "1", "1"},
	}}

	svc := NewSummaryService(NewMealService(legacy, nil), NewGoalService(tables.Goals))
	summary := svc.Daily(ctx, summaryDay)

	if summary.LoadErr != nil {
		t.Fatalf("unexpected load error: %v", summary.LoadErr)
	}
	if !summary.FiberTracked {
		t.Fatal("expected fiber to be tracked when fiber_g column exists")
	}
	if len(summary.Entries) != 2 {
		t.Fatalf("expected unparsable row to be skipped, got %d entries", len(summary.Entries))
	}
	if !almostEqual(summary.Totals.Calories, 190) || !almostEqual(summary.Totals.Fiber, 6.5) {
		t.Fatalf("unexpected totals: %+v", summary.Totals)
	}
}

func TestSummaryDailyUsesDeclaredHeaderWithoutFiber(t *testing.T) {
	_, tables := setupDietTestDB(t)
	ctx := context.Background()

	goals := NewGoalService(tables.Goals)
	if _, err := goals.Upsert(ctx, GoalInput{MonthYear: "2024-05", CalorieGoal: 1700, ProteinGoal: 80}); err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	meals := NewMealService(tables.Meals, goals)
	if _, err := meals.Append(ctx, MealInput{EatenAt: summaryDay.Add(8 * time.Hour), FoodName: "Chicken", Calories: 1800, Protein: 80}); err != nil {
		t.Fatalf("failed to seed meal: %v", err)
	}

	summary := NewSummaryService(meals, goals).Daily(ctx, summaryDay)

	if summary.FiberTracked {
		t.Fatal("declared header has no fiber column")
	}
	if summary.State != SummaryEvaluated || summary.CalorieStatus != StatusExceeded || summary.ProteinStatus != StatusOK {
		t.Fatalf("unexpected summary: state=%s calories=%s protein=%s", summary.State, summary.CalorieStatus, summary.ProteinStatus)
	}
}

func TestSummaryDailySoftFailsOnReadError(t *testing.T) {
	_, tables := setupDietTestDB(t)
	boom := errors.New("quota exceeded")
	broken := &stubSheet{title: MealsSheet, err: boom}

	summary := NewSummaryService(NewMealService(broken, nil), NewGoalService(tables.Goals)).Daily(context.Background(), summaryDay)

	if !errors.Is(summary.LoadErr, boom) {
		t.Fatalf("expected load error to be recorded, got %v", summary.LoadErr)
	}
	if summary.State != SummaryNoEntries || !summary.TableEmpty {
		t.Fatalf("expected empty state, got %+v", summary)
	}
}

func TestSummaryDailySchemaMismatchSoftFails(t *testing.T) {
	_, tables := setupDietTestDB(t)
	odd := &stubSheet{title: MealsSheet, rows: [][]string{{"when", "what"}}}

	summary := NewSummaryService(NewMealService(odd, nil), NewGoalService(tables.Goals)).Daily(context.Background(), summaryDay)

	if !errors.Is(summary.LoadErr, workbook.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", summary.LoadErr)
	}
}

type stubSheet struct {
	title string
	rows  [][]string
	err   error
}

func (s *stubSheet) Title() string { return s.title }

func (s *stubSheet) Rows(context.Context) ([][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubSheet) AppendRow(context.Context, []any) error {
	return s.err
}

func (s *stubSheet) UpdateCell(context.Context, int, string, any) error {
	return s.err
}
