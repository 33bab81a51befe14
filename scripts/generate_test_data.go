package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dietlog/internal/config"
	"github.com/dietlog/internal/db"
	"github.com/dietlog/internal/service"
)

type sampleMeal struct {
	clock    time.Duration
	food     string
	grams    float64
	calories float64
	protein  float64
	carbs    float64
	fat      float64
	notes    string
}

var sampleMenu = []sampleMeal{
	{clock: 8 * time.Hour, food: "燕麦粥", grams: 250, calories: 180, protein: 6.5, carbs: 30, fat: 3.2},
	{clock: 8*time.Hour + 5*time.Minute, food: "水煮蛋", grams: 50, calories: 72, protein: 6.3, carbs: 0.4, fat: 4.8},
	{clock: 12*time.Hour + 30*time.Minute, food: "米饭", grams: 150, calories: 195, protein: 4.1, carbs: 42.1, fat: 0.4},
	{clock: 12*time.Hour + 30*time.Minute, food: "鸡胸肉", grams: 120, calories: 198, protein: 37.2, carbs: 0, fat: 4.3, notes: "少油煎"},
	{clock: 16 * time.Hour, food: "苹果", grams: 180, calories: 94, protein: 0.5, carbs: 25, fat: 0.3},
	{clock: 19 * time.Hour, food: "三文鱼", grams: 100, calories: 208, protein: 20, carbs: 0, fat: 13},
	{clock: 19 * time.Hour, food: "西兰花", grams: 150, calories: 51, protein: 4.2, carbs: 10, fat: 0.6},
}

// 测试数据生成器，写入本地 SQLite 工作簿
func main() {
	cfg := config.Load()
	gdb, err := db.Open(cfg.DatabasePath, nil)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	ctx := context.Background()
	tables, err := service.OpenTables(ctx, db.NewWorkbook(gdb))
	if err != nil {
		log.Fatal("工作表初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	now := time.Now()
	goals := service.NewGoalService(tables.Goals)
	meals := service.NewMealService(tables.Meals, goals)
	notes := service.NewNoteService(tables.Notes)

	if err := seedGoals(ctx, goals, now); err != nil {
		log.Fatal("创建目标失败:", err)
	}
	created, err := seedMeals(ctx, meals, now, 3)
	if err != nil {
		log.Fatal("创建饮食记录失败:", err)
	}
	if err := seedNotes(ctx, notes, now); err != nil {
		log.Fatal("创建笔记失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("饮食记录: %d 条\n", created)
	fmt.Printf("数据库: %s\n", cfg.DatabasePath)
}

// seedGoals 为本月与上月设置目标，重复运行只会更新已有行
func seedGoals(ctx context.Context, goals *service.GoalService, now time.Time) error {
	inputs := []service.GoalInput{
		{MonthYear: service.MonthLabel(now), CalorieGoal: service.DefaultCalorieGoal, ProteinGoal: service.DefaultProteinGoal},
		{MonthYear: service.MonthLabel(now.AddDate(0, -1, 0)), CalorieGoal: 1800, ProteinGoal: 70},
	}
	for _, input := range inputs {
		result, err := goals.Upsert(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("目标 %s: %s\n", input.MonthYear, result)
	}
	return nil
}

// seedMeals 为最近 days 天写入示例菜单；已有记录时跳过
func seedMeals(ctx context.Context, meals *service.MealService, now time.Time, days int) (int, error) {
	existing, _, err := meals.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		fmt.Println("饮食记录已存在，跳过创建")
		return 0, nil
	}

	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	created := 0
	for offset := days - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)
		for _, item := range sampleMenu {
			_, err := meals.Append(ctx, service.MealInput{
				EatenAt:  date.Add(item.clock),
				FoodName: item.food,
				Grams:    item.grams,
				Calories: item.calories,
				Protein:  item.protein,
				Carbs:    item.carbs,
				Fat:      item.fat,
				Notes:    item.notes,
			})
			if err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func seedNotes(ctx context.Context, notes *service.NoteService, now time.Time) error {
	existing, err := notes.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("笔记已存在，跳过创建")
		return nil
	}
	_, err = notes.Append(ctx, now, "今天蛋白质**达标**，晚饭后有点饿。\n\n- 明天早餐加一杯牛奶")
	return err
}
