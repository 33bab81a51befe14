package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// StoreBackendSheets 使用 Google Sheets 作为表格存储。
	StoreBackendSheets = "sheets"
	// StoreBackendSQLite 使用本地 SQLite 文件模拟工作簿，便于开发调试。
	StoreBackendSQLite = "sqlite"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	GinMode            string
	SessionSecret      string
	StoreBackend       string
	DatabasePath       string
	SpreadsheetID      string
	SpreadsheetName    string
	ServiceAccountJSON string
	ServiceAccountFile string
	DefaultLanguage    string
}

// Load 从环境变量（以及可选的 .env 文件）读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	// .env 不存在时直接使用进程环境变量
	_ = godotenv.Load()

	port := getenv("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	backend := strings.ToLower(getenv("STORE_BACKEND", StoreBackendSheets))
	if backend != StoreBackendSQLite {
		backend = StoreBackendSheets
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		GinMode:            getenv("GIN_MODE", "release"),
		SessionSecret:      getenv("SESSION_SECRET", "dietlog-dev-secret"),
		StoreBackend:       backend,
		DatabasePath:       getenv("DATABASE_PATH", "dietlog.db"),
		SpreadsheetID:      strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		SpreadsheetName:    getenv("SPREADSHEET_NAME", "Diet Logging"),
		ServiceAccountJSON: strings.TrimSpace(os.Getenv("GCP_SERVICE_ACCOUNT")),
		ServiceAccountFile: strings.TrimSpace(os.Getenv("GCP_SERVICE_ACCOUNT_FILE")),
		DefaultLanguage:    getenv("DEFAULT_LANGUAGE", "zh"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
