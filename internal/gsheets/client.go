// Package gsheets 基于 Google Sheets API v4 实现 workbook.Workbook。
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dietlog/internal/workbook"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var (
	// ErrAccessDenied 表示服务账号无权访问表格（未共享、凭据被拒绝或表格不存在）
	ErrAccessDenied = errors.New("spreadsheet access denied")
)

// Options 描述连接表格所需的信息
type Options struct {
	SpreadsheetID   string
	SpreadsheetName string
	Credentials     CredentialSource
	// HTTPClient 非空时直接使用，跳过凭据加载（测试时注入 mock 客户端）
	HTTPClient *http.Client
	// Endpoint 覆盖 API 根地址，仅用于测试
	Endpoint string
}

// Workbook 是一个已打开的 Google 表格
type Workbook struct {
	sheets        *sheets.Service
	spreadsheetID string
	title         string
}

// Connect 建立 Sheets 连接并定位表格。失败时返回的错误可用
// errors.Is 区分 ErrCredentialsMissing 与 ErrAccessDenied。
func Connect(ctx context.Context, opts Options) (*Workbook, error) {
	client := opts.HTTPClient
	if client == nil {
		conf, err := LoadCredentials(opts.Credentials)
		if err != nil {
			return nil, err
		}
		client = conf.Client(ctx)
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	sheetsService, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		driveService, err := drive.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create drive service: %w", err)
		}
		id, err = ResolveSpreadsheet(ctx, driveService, opts.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	spreadsheet, err := sheetsService.Spreadsheets.Get(id).Fields("spreadsheetId", "properties.title").Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("open spreadsheet %s: %w", id, err))
	}

	wb := &Workbook{sheets: sheetsService, spreadsheetID: spreadsheet.SpreadsheetId}
	if spreadsheet.Properties != nil {
		wb.title = spreadsheet.Properties.Title
	}
	return wb, nil
}

// ResolveSpreadsheet 通过 Drive 文件搜索按名称查找表格 ID
func ResolveSpreadsheet(ctx context.Context, srv *drive.Service, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("spreadsheet id or name is required")
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)

	list, err := srv.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", classify(fmt.Errorf("search spreadsheet %q: %w", name, err))
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: spreadsheet %q not found or not shared with the service account", ErrAccessDenied, name)
	}
	return list.Files[0].Id, nil
}

// Title 返回表格名称
func (w *Workbook) Title() string {
	return w.title
}

// SpreadsheetID 返回表格 ID
func (w *Workbook) SpreadsheetID() string {
	return w.spreadsheetID
}

// Worksheet 查找指定标题的工作表
func (w *Workbook) Worksheet(ctx context.Context, title string) (workbook.Worksheet, error) {
	spreadsheet, err := w.sheets.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("list worksheets: %w", err))
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return &worksheet{book: w, title: title}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", workbook.ErrWorksheetNotFound, title)
}

// AddWorksheet 通过 batchUpdate 新增工作表
func (w *Workbook) AddWorksheet(ctx context.Context, title string, rows, cols int) (workbook.Worksheet, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows),
						ColumnCount: int64(cols),
					},
				},
			},
		}},
	}

	if _, err := w.sheets.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return nil, classify(fmt.Errorf("add worksheet %s: %w", title, err))
	}
	return &worksheet{book: w, title: title}, nil
}

type worksheet struct {
	book  *Workbook
	title string
}

func (ws *worksheet) Title() string {
	return ws.title
}

func (ws *worksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := ws.book.sheets.Spreadsheets.Values.Get(ws.book.spreadsheetID, quoteTitle(ws.title)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", ws.title, err))
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = workbook.FormatCell(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (ws *worksheet) AppendRow(ctx context.Context, values []any) error {
	body := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := ws.book.sheets.Spreadsheets.Values.Append(ws.book.spreadsheetID, quoteTitle(ws.title), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return classify(fmt.Errorf("append to %s: %w", ws.title, err))
	}
	return nil
}

func (ws *worksheet) UpdateCell(ctx context.Context, row int, column string, value any) error {
	if row < 1 || workbook.ColumnIndex(column) < 0 {
		return fmt.Errorf("%w: %s%d", workbook.ErrRowOutOfRange, column, row)
	}

	cell := fmt.Sprintf("%s!%s%d", quoteTitle(ws.title), strings.ToUpper(column), row)
	body := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := ws.book.sheets.Spreadsheets.Values.Update(ws.book.spreadsheetID, cell, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify(fmt.Errorf("update %s: %w", cell, err))
	}
	return nil
}

// quoteTitle 按 A1 记法给工作表名加引号，兼容含空格或下划线的标题
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// classify 将 401/403/404 归类为 ErrAccessDenied，保留原始错误信息
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}
	return err
}
