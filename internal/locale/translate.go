package locale

import "fmt"

// Pick returns the text matching the request language, defaulting to Chinese.
func Pick(language, english, chinese string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return chinese
	}
	if chinese != "" {
		return chinese
	}
	return english
}

type message struct {
	en string
	zh string
}

var messages = map[string]message{
	"app.title":              {en: "Diet Tracker", zh: "饮食记录"},
	"app.subtitle":           {en: "Enter each food you eat (one row per food). It saves to the spreadsheet right away.", zh: "每吃一样食物记录一行，提交后立即保存到表格。"},
	"meal.title":             {en: "Add food", zh: "添加食物"},
	"meal.date":              {en: "Date", zh: "日期"},
	"meal.time":              {en: "Time eaten", zh: "进食时间"},
	"meal.food":              {en: "Food item (e.g. Cooked rice)", zh: "食物名称（如：米饭）"},
	"meal.grams":             {en: "Quantity (g)", zh: "重量（克）"},
	"meal.calories":          {en: "Calories (kcal)", zh: "热量（千卡）"},
	"meal.protein":           {en: "Protein (g)", zh: "蛋白质（克）"},
	"meal.carbs":             {en: "Carbs (g)", zh: "碳水（克）"},
	"meal.fat":               {en: "Fat (g)", zh: "脂肪（克）"},
	"meal.notes":             {en: "Notes for this entry (optional)", zh: "本条备注（可选）"},
	"meal.submit":            {en: "Add food", zh: "添加并保存"},
	"meal.saved":             {en: "Saved: %s (%s at %s)", zh: "已保存：%s（%s %s）"},
	"meal.save_failed":       {en: "Save failed: %v", zh: "保存失败：%v"},
	"meal.name_required":     {en: "Please enter a food name.", zh: "请填写食物名称。"},
	"meal.negative":          {en: "Amounts must not be negative.", zh: "数值不能为负数。"},
	"meal.notes_too_long":    {en: "Notes can be at most %d characters.", zh: "备注最多 %d 个字符。"},
	"goal.title":             {en: "Monthly goals", zh: "月度目标"},
	"goal.month":             {en: "Month", zh: "月份"},
	"goal.calories":          {en: "Daily calorie goal (kcal)", zh: "每日热量目标（千卡）"},
	"goal.protein":           {en: "Daily protein goal (g)", zh: "每日蛋白质目标（克）"},
	"goal.submit":            {en: "Set / update monthly goal", zh: "设置 / 更新月度目标"},
	"goal.created":           {en: "Goal created for %s: %s kcal/day, %s g protein/day", zh: "已创建 %s 的目标：每日 %s 千卡，蛋白质 %s 克"},
	"goal.updated":           {en: "Goal updated for %s: %s kcal/day, %s g protein/day", zh: "已更新 %s 的目标：每日 %s 千卡，蛋白质 %s 克"},
	"goal.invalid":           {en: "Calorie goal must be at least %d and protein goal must not be negative.", zh: "热量目标不能低于 %d，蛋白质目标不能为负数。"},
	"goal.invalid_month":     {en: "Please choose a valid month.", zh: "请选择有效的月份。"},
	"goal.save_failed":       {en: "Failed to save goal: %v", zh: "保存目标失败：%v"},
	"summary.title":          {en: "Daily summary", zh: "每日汇总"},
	"summary.date":           {en: "Select a date to view summary", zh: "选择查看汇总的日期"},
	"summary.show":           {en: "Show", zh: "查看"},
	"summary.no_data":        {en: "No food entries yet.", zh: "还没有任何饮食记录。"},
	"summary.no_entries":     {en: "No entries for selected date.", zh: "所选日期没有记录。"},
	"summary.no_goal":        {en: "No goal set for this month. Set one in the goals form.", zh: "本月尚未设置目标，请在月度目标表单中设置。"},
	"summary.goal":           {en: "Goal for %s: %s kcal/day, %s g protein/day", zh: "%s 的目标：每日 %s 千卡，蛋白质 %s 克"},
	"summary.fetch_failed":   {en: "Failed to fetch meals: %v", zh: "读取饮食记录失败：%v"},
	"summary.fiber_missing":  {en: "Fiber is not tracked in this sheet.", zh: "当前表格未记录膳食纤维。"},
	"summary.fiber":          {en: "Fiber (g)", zh: "膳食纤维（克）"},
	"summary.calories_label": {en: "Calories", zh: "热量"},
	"summary.protein_label":  {en: "Protein", zh: "蛋白质"},
	"status.ok":              {en: "OK", zh: "达标"},
	"status.exceeded":        {en: "Exceeded", zh: "超标"},
	"status.low":             {en: "Low", zh: "不足"},
	"note.title":             {en: "Daily notes", zh: "每日笔记"},
	"note.date":              {en: "Note date", zh: "笔记日期"},
	"note.text":              {en: "Write observations, struggles, feelings about diet today", zh: "写下今天关于饮食的观察、困难与感受"},
	"note.submit":            {en: "Save daily note", zh: "保存笔记"},
	"note.saved":             {en: "Note saved.", zh: "笔记已保存。"},
	"note.empty":             {en: "Note is empty.", zh: "笔记内容为空。"},
	"note.too_long":          {en: "Notes can be at most %d characters.", zh: "笔记最多 %d 个字符。"},
	"note.save_failed":       {en: "Failed to save note: %v", zh: "保存笔记失败：%v"},
	"note.list":              {en: "All notes", zh: "全部笔记"},
	"note.none":              {en: "No notes yet.", zh: "还没有笔记。"},
	"table.title":            {en: "Table preview", zh: "表格预览"},
	"table.empty":            {en: "This table has no rows yet.", zh: "该表格暂无数据。"},
	"table.fetch_failed":     {en: "Failed to load table: %v", zh: "读取表格失败：%v"},
	"table.not_found":        {en: "Unknown table.", zh: "表格不存在。"},
	"form.invalid_number":    {en: "%s must be a number.", zh: "%s 必须是数字。"},
	"form.invalid_date":      {en: "Please enter a valid date.", zh: "请输入有效的日期。"},
	"nav.home":               {en: "Log", zh: "记录"},
	"nav.notes":              {en: "Notes", zh: "笔记"},
	"nav.tables":             {en: "Tables", zh: "表格"},
}

// T 返回指定语言的界面文案，args 非空时按 fmt 格式化；未知 key 原样返回
func T(language, key string, args ...any) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	text := Pick(language, msg.en, msg.zh)
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}
