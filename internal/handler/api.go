package handler

import (
	"time"

	"github.com/dietlog/internal/locale"
	"github.com/dietlog/internal/service"
	"github.com/gin-gonic/gin"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	tables          *service.Tables
	meals           *service.MealService
	goals           *service.GoalService
	notes           *service.NoteService
	summaries       *service.SummaryService
	defaultLanguage string
	now             func() time.Time
}

// NewAPI constructs a handler set over the three worksheets.
func NewAPI(tables *service.Tables, defaultLanguage string) *API {
	goals := service.NewGoalService(tables.Goals)
	meals := service.NewMealService(tables.Meals, goals)

	language := locale.NormalizeLanguage(defaultLanguage)
	if language == "" {
		language = locale.LanguageChinese
	}

	return &API{
		tables:          tables,
		meals:           meals,
		goals:           goals,
		notes:           service.NewNoteService(tables.Notes),
		summaries:       service.NewSummaryService(meals, goals),
		defaultLanguage: language,
		now:             time.Now,
	}
}

// renderHTML 渲染模板时附加语言、语言切换链接与一次性 flash 提示
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	pref := a.requestLocale(c)
	if _, exists := payload["lang"]; !exists {
		payload["lang"] = pref.Language
	}
	if _, exists := payload["htmlLang"]; !exists {
		payload["htmlLang"] = pref.HTMLLang
	}
	if _, exists := payload["languageSwitch"]; !exists {
		payload["languageSwitch"] = buildLanguageSwitch(c)
	}
	if _, exists := payload["flash"]; !exists {
		if flash := popFlash(c); flash != nil {
			payload["flash"] = flash
		}
	}

	c.HTML(status, template, payload)
}

func (a *API) language(c *gin.Context) string {
	return a.requestLocale(c).Language
}
