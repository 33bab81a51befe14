package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dietlog/internal/db"
	"github.com/dietlog/internal/handler"
	"github.com/dietlog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tables, err := service.OpenTables(context.Background(), db.NewWorkbook(gdb))
	if err != nil {
		t.Fatalf("failed to open tables: %v", err)
	}
	return SetupRouter(handler.NewAPI(tables, "zh"), "test-secret")
}

func TestPingSetsRequestID(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if _, err := uuid.Parse(w.Header().Get(requestIDHeader)); err != nil {
		t.Fatalf("expected generated request id, got %q", w.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "upstream-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "upstream-42" {
		t.Fatalf("expected upstream request id to be echoed, got %q", got)
	}
}

func TestIndexRendersEmbeddedTemplates(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"饮食记录", `action="/meals"`, `action="/goals"`, `action="/notes"`, "还没有任何饮食记录"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	if !strings.Contains(w.Body.String(), "Diet Tracker") {
		t.Fatal("expected english title with lang=en")
	}
}

func TestAddMealFlowShowsFlashAndSummary(t *testing.T) {
	r := setupRouterTest(t)

	form := url.Values{"food_name": {"Toast"}, "grams": {"60"}, "calories": {"160"}, "protein": {"5.5"}}
	req := httptest.NewRequest(http.MethodPost, "/meals", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}

	follow := httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
	for _, c := range w.Result().Cookies() {
		follow.AddCookie(c)
	}
	page := httptest.NewRecorder()
	r.ServeHTTP(page, follow)

	body := page.Body.String()
	if !strings.Contains(body, "banner-success") || !strings.Contains(body, "Toast") {
		t.Fatalf("expected success banner and meal row, got %s", body)
	}
	if !strings.Contains(body, "本月尚未设置目标") {
		t.Fatal("expected no-goal notice without a monthly goal")
	}
}

func TestTablePreviewAndStatic(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tables/goals", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<th>month_year</th>", "<th>created_at</th>", "该表格暂无数据"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected header-only goals preview to contain %q, got %s", want, body)
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tables/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected stylesheet to be served, got %d", w.Code)
	}
}
