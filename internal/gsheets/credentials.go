package gsheets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// Scopes 与服务账号授权的访问范围：读写表格，并按名称在 Drive 中查找表格。
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

var (
	// ErrCredentialsMissing 表示未配置服务账号凭据
	ErrCredentialsMissing = errors.New("service account credentials not configured")
	// ErrCredentialsInvalid 表示凭据内容无法解析为服务账号
	ErrCredentialsInvalid = errors.New("service account credentials are malformed")
)

// CredentialSource 描述服务账号凭据来源：内联 JSON 优先，其次为文件路径。
type CredentialSource struct {
	JSON string
	File string
}

// LoadCredentials 读取服务账号 JSON 并生成 JWT 配置。
func LoadCredentials(src CredentialSource) (*jwt.Config, error) {
	data := []byte(strings.TrimSpace(src.JSON))
	if len(data) == 0 {
		path := strings.TrimSpace(src.File)
		if path == "" {
			return nil, ErrCredentialsMissing
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrCredentialsMissing, path)
			}
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		data = raw
	}

	conf, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialsInvalid, err)
	}
	return conf, nil
}
