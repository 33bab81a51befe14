package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dietlog/internal/config"
	"github.com/dietlog/internal/db"
	"github.com/dietlog/internal/gsheets"
	"github.com/dietlog/internal/handler"
	"github.com/dietlog/internal/router"
	"github.com/dietlog/internal/service"
	"github.com/dietlog/internal/workbook"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	wb, err := openWorkbook(ctx, cfg)
	if err != nil {
		log.Fatal(storeErrorMessage("connect to store", err))
	}

	// 三张工作表不存在时创建并写入表头
	tables, err := service.OpenTables(ctx, wb)
	if err != nil {
		log.Fatal(storeErrorMessage("prepare worksheets", err))
	}

	api := handler.NewAPI(tables, cfg.DefaultLanguage)
	r := router.SetupRouter(api, cfg.SessionSecret)

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// storeErrorMessage 按错误原因给出不同的启动失败提示
func storeErrorMessage(stage string, err error) string {
	switch {
	case errors.Is(err, gsheets.ErrCredentialsMissing):
		return fmt.Sprintf("%s: missing service account credentials: set GCP_SERVICE_ACCOUNT or GCP_SERVICE_ACCOUNT_FILE: %v", stage, err)
	case errors.Is(err, gsheets.ErrCredentialsInvalid):
		return fmt.Sprintf("%s: service account credentials are malformed: %v", stage, err)
	case errors.Is(err, gsheets.ErrAccessDenied):
		return fmt.Sprintf("%s: cannot access spreadsheet: check it exists and is shared with the service account as editor: %v", stage, err)
	default:
		return fmt.Sprintf("%s: unexpected error: %v", stage, err)
	}
}

func openWorkbook(ctx context.Context, cfg config.AppConfig) (workbook.Workbook, error) {
	if cfg.StoreBackend == config.StoreBackendSQLite {
		gdb, err := db.Open(cfg.DatabasePath, nil)
		if err != nil {
			return nil, err
		}
		log.Printf("using local sqlite store at %s", cfg.DatabasePath)
		return db.NewWorkbook(gdb), nil
	}

	wb, err := gsheets.Connect(ctx, gsheets.Options{
		SpreadsheetID:   cfg.SpreadsheetID,
		SpreadsheetName: cfg.SpreadsheetName,
		Credentials: gsheets.CredentialSource{
			JSON: cfg.ServiceAccountJSON,
			File: cfg.ServiceAccountFile,
		},
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to spreadsheet %q (%s)", wb.Title(), wb.SpreadsheetID())
	return wb, nil
}
