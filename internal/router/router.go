package router

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/dietlog/internal/handler"
	"github.com/dietlog/internal/locale"
	"github.com/dietlog/internal/view"
	"github.com/dietlog/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	// 会话只用于跨重定向传递 flash 提示
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 24 * 60 * 60, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("dietlog_session", store))
	r.Use(api.LocaleMiddleware())

	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseFS(web.Templates, "template/*.html"))
	r.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", api.ShowIndex)
	r.POST("/meals", api.AddMeal)
	r.POST("/goals", api.SetGoal)
	r.GET("/summary", api.ShowSummary)
	r.GET("/notes", api.ShowNotes)
	r.POST("/notes", api.SaveNote)
	r.GET("/tables/:name", api.ShowTable)

	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t":           locale.T,
		"amount":      view.Amount,
		"statusIcon":  view.StatusIcon,
		"statusClass": view.StatusClass,
	}
}

// requestID 沿用上游传入的 X-Request-ID，没有时生成一个
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
