package handler

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/dietlog/internal/locale"
	"github.com/dietlog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

var tableNames = []string{"meals", "goals", "notes"}

type noteView struct {
	Date      string
	CreatedAt string
	Content   template.HTML
}

// ShowTable 预览某个工作表的全部行
func (a *API) ShowTable(c *gin.Context) {
	lang := a.language(c)
	name := strings.ToLower(strings.TrimSpace(c.Param("name")))

	sheet, ok := a.tables.ByName(name)
	if !ok {
		a.renderHTML(c, http.StatusNotFound, "tables.html", gin.H{
			"title":        locale.T(lang, "table.title"),
			"tableNames":   tableNames,
			"current":      "",
			"formFeedback": &flashMessage{Level: flashWarning, Message: locale.T(lang, "table.not_found")},
		})
		return
	}

	data := gin.H{
		"title":      locale.T(lang, "table.title"),
		"tableNames": tableNames,
		"current":    name,
	}
	preview, err := service.Preview(c.Request.Context(), sheet)
	if err != nil {
		log.Printf("preview %s failed: %v", name, err)
		data["formFeedback"] = &flashMessage{Level: flashError, Message: locale.T(lang, "table.fetch_failed", err)}
	}
	data["preview"] = preview

	a.renderHTML(c, http.StatusOK, "tables.html", data)
}

// ShowNotes 列出每日笔记，正文按 Markdown 渲染
func (a *API) ShowNotes(c *gin.Context) {
	lang := a.language(c)
	date := strings.TrimSpace(c.Query("date"))

	data := gin.H{
		"title": locale.T(lang, "note.list"),
		"date":  date,
	}

	notes, err := a.notes.List(c.Request.Context(), date)
	if err != nil {
		log.Printf("list notes failed: %v", err)
		data["formFeedback"] = &flashMessage{Level: flashError, Message: locale.T(lang, "table.fetch_failed", err)}
	}

	views := make([]noteView, 0, len(notes))
	for _, note := range notes {
		content, err := renderMarkdown(note.Note)
		if err != nil {
			content = template.HTML(template.HTMLEscapeString(note.Note))
		}
		views = append(views, noteView{Date: note.Date, CreatedAt: note.CreatedAt, Content: content})
	}
	data["notes"] = views

	a.renderHTML(c, http.StatusOK, "notes.html", data)
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
