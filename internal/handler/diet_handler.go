package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dietlog/internal/locale"
	"github.com/dietlog/internal/service"
	"github.com/gin-gonic/gin"
)

const monthOptionCount = 12

var (
	mealFields = []string{"date", "time", "food_name", "grams", "calories", "protein", "carbs", "fat", "notes"}
	goalFields = []string{"month_year", "calorie_goal", "protein_goal"}
	noteFields = []string{"date", "note"}
)

// ShowIndex 渲染记录页：添加食物、月度目标、每日笔记与所选日期的汇总
func (a *API) ShowIndex(c *gin.Context) {
	now := a.now()
	day, err := parseDay(c.Query("summary_date"), now)
	if err != nil {
		day = startOfDay(now)
	}
	a.renderIndex(c, http.StatusOK, day, nil)
}

// AddMeal 处理"添加食物"表单，成功后重定向回记录页
func (a *API) AddMeal(c *gin.Context) {
	lang := a.language(c)
	values := formValues(c, mealFields...)

	input, err := a.mealInputFromForm(values)
	if err == nil {
		_, err = a.meals.Append(c.Request.Context(), input)
	}
	if err != nil {
		status, level, message := a.mealFailure(lang, err)
		a.renderIndex(c, status, startOfDay(a.now()), gin.H{
			"mealForm":     values,
			"formFeedback": &flashMessage{Level: level, Message: message},
		})
		return
	}

	setFlash(c, flashSuccess, locale.T(lang, "meal.saved",
		strings.TrimSpace(input.FoodName),
		input.EatenAt.Format(service.DateLayout),
		input.EatenAt.Format(service.TimeLayout)))
	c.Redirect(http.StatusFound, "/?summary_date="+input.EatenAt.Format(service.DateLayout))
}

func (a *API) mealInputFromForm(values map[string]string) (service.MealInput, error) {
	now := a.now()
	day, err := parseDay(values["date"], now)
	if err != nil {
		return service.MealInput{}, err
	}
	clock, err := parseClock(values["time"], now)
	if err != nil {
		return service.MealInput{}, err
	}

	input := service.MealInput{
		EatenAt:  day.Add(clock),
		FoodName: values["food_name"],
		Notes:    values["notes"],
	}
	numbers := []struct {
		field string
		dst   *float64
	}{
		{"grams", &input.Grams},
		{"calories", &input.Calories},
		{"protein", &input.Protein},
		{"carbs", &input.Carbs},
		{"fat", &input.Fat},
	}
	for _, n := range numbers {
		v, err := parseFloatField(values, n.field)
		if err != nil {
			return service.MealInput{}, err
		}
		*n.dst = v
	}
	return input, nil
}

func (a *API) mealFailure(lang string, err error) (int, string, string) {
	var fe *fieldError
	switch {
	case errors.Is(err, service.ErrFoodNameRequired):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "meal.name_required")
	case errors.Is(err, service.ErrNegativeAmount):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "meal.negative")
	case errors.Is(err, service.ErrMealNotesTooLong):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "meal.notes_too_long", service.MaxMealNotesRunes)
	case errors.As(err, &fe):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "form.invalid_number", fe.field)
	case errors.Is(err, errInvalidDate):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "form.invalid_date")
	}
	log.Printf("add meal failed: %v", err)
	return http.StatusInternalServerError, flashError, locale.T(lang, "meal.save_failed", err)
}

// SetGoal 新建或更新某月的目标
func (a *API) SetGoal(c *gin.Context) {
	lang := a.language(c)
	values := formValues(c, goalFields...)

	input := service.GoalInput{MonthYear: values["month_year"]}
	var (
		result service.UpsertResult
		err    error
	)
	if input.CalorieGoal, err = parseFloatField(values, "calorie_goal"); err == nil {
		if input.ProteinGoal, err = parseFloatField(values, "protein_goal"); err == nil {
			result, err = a.goals.Upsert(c.Request.Context(), input)
		}
	}

	if err != nil {
		status, level, message := a.goalFailure(lang, err)
		a.renderIndex(c, status, startOfDay(a.now()), gin.H{
			"goalForm":     values,
			"formFeedback": &flashMessage{Level: level, Message: message},
		})
		return
	}

	// 覆盖已有目标用 info 提示，与首次创建区分
	key, level := "goal.created", flashSuccess
	if result == service.UpsertUpdated {
		key, level = "goal.updated", flashInfo
	}
	month := strings.TrimSpace(input.MonthYear)
	setFlash(c, level, locale.T(lang, key, month, formatAmount(input.CalorieGoal), formatAmount(input.ProteinGoal)))
	c.Redirect(http.StatusFound, "/")
}

func (a *API) goalFailure(lang string, err error) (int, string, string) {
	var fe *fieldError
	switch {
	case errors.Is(err, service.ErrInvalidMonth):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "goal.invalid_month")
	case errors.Is(err, service.ErrInvalidGoal):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "goal.invalid", service.MinCalorieGoal)
	case errors.As(err, &fe):
		return http.StatusBadRequest, flashWarning, locale.T(lang, "form.invalid_number", fe.field)
	}
	log.Printf("set goal failed: %v", err)
	return http.StatusInternalServerError, flashError, locale.T(lang, "goal.save_failed", err)
}

// SaveNote 追加一条每日笔记
func (a *API) SaveNote(c *gin.Context) {
	lang := a.language(c)
	values := formValues(c, noteFields...)

	day, err := parseDay(values["date"], a.now())
	if err == nil {
		_, err = a.notes.Append(c.Request.Context(), day, values["note"])
	}

	if err != nil {
		status, level, message := http.StatusInternalServerError, flashError, locale.T(lang, "note.save_failed", err)
		switch {
		case errors.Is(err, service.ErrNoteEmpty):
			status, level, message = http.StatusBadRequest, flashWarning, locale.T(lang, "note.empty")
		case errors.Is(err, service.ErrNoteTooLong):
			status, level, message = http.StatusBadRequest, flashWarning, locale.T(lang, "note.too_long", service.MaxNoteRunes)
		case errors.Is(err, errInvalidDate):
			status, level, message = http.StatusBadRequest, flashWarning, locale.T(lang, "form.invalid_date")
		default:
			log.Printf("save note failed: %v", err)
		}
		a.renderIndex(c, status, startOfDay(a.now()), gin.H{
			"noteForm":     values,
			"formFeedback": &flashMessage{Level: level, Message: message},
		})
		return
	}

	setFlash(c, flashSuccess, locale.T(lang, "note.saved"))
	c.Redirect(http.StatusFound, "/")
}

// ShowSummary 单独渲染某日汇总
func (a *API) ShowSummary(c *gin.Context) {
	day, err := parseDay(c.Query("date"), a.now())
	if err != nil {
		a.renderHTML(c, http.StatusBadRequest, "summary.html", gin.H{
			"title":        locale.T(a.language(c), "summary.title"),
			"formFeedback": &flashMessage{Level: flashWarning, Message: locale.T(a.language(c), "form.invalid_date")},
		})
		return
	}

	summary := a.summaries.Daily(c.Request.Context(), day)
	a.renderHTML(c, http.StatusOK, "summary.html", gin.H{
		"title":   locale.T(a.language(c), "summary.title"),
		"summary": summary,
	})
}

// renderIndex 组装记录页数据；overrides 用于在提交失败时回填表单与提示
func (a *API) renderIndex(c *gin.Context, status int, summaryDay time.Time, overrides gin.H) {
	ctx := c.Request.Context()
	lang := a.language(c)
	now := a.now()
	currentMonth := service.MonthLabel(now)

	goalForm := map[string]string{
		"month_year":   currentMonth,
		"calorie_goal": formatAmount(service.DefaultCalorieGoal),
		"protein_goal": formatAmount(service.DefaultProteinGoal),
	}
	if goal, err := a.goals.ForMonth(ctx, currentMonth); err != nil {
		log.Printf("load goal for %s: %v", currentMonth, err)
	} else if goal != nil {
		goalForm["calorie_goal"] = formatAmount(goal.CalorieGoal)
		goalForm["protein_goal"] = formatAmount(goal.ProteinGoal)
	}

	data := gin.H{
		"title":     locale.T(lang, "app.title"),
		"summary":   a.summaries.Daily(ctx, summaryDay),
		"months":    service.MonthOptions(now, monthOptionCount),
		"mealNotes": service.MaxMealNotesRunes,
		"noteMax":   service.MaxNoteRunes,
		"mealForm": map[string]string{
			"date":     now.Format(service.DateLayout),
			"time":     now.Format("15:04"),
			"grams":    "100",
			"calories": "200",
			"protein":  "20",
			"carbs":    "30",
			"fat":      "5",
		},
		"goalForm": goalForm,
		"noteForm": map[string]string{
			"date": now.Format(service.DateLayout),
		},
	}
	for key, value := range overrides {
		data[key] = value
	}

	a.renderHTML(c, status, "index.html", data)
}
