// Package workbook 定义表格存储的抽象：一个工作簿包含若干具名工作表，
// 每个工作表第一行为表头，其余行为记录。
package workbook

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultRows 与 DefaultColumns 是新建工作表的初始容量。
	DefaultRows    = 1000
	DefaultColumns = 20
)

var (
	// ErrWorksheetNotFound 在工作簿中不存在指定名称的工作表时返回
	ErrWorksheetNotFound = errors.New("worksheet not found")
	// ErrSchemaMismatch 表头缺少必需列时返回
	ErrSchemaMismatch = errors.New("worksheet header does not match schema")
	// ErrRowOutOfRange 更新的单元格行号不存在时返回
	ErrRowOutOfRange = errors.New("row out of range")
)

// Workbook 是一组具名工作表的容器。
type Workbook interface {
	Worksheet(ctx context.Context, title string) (Worksheet, error)
	AddWorksheet(ctx context.Context, title string, rows, cols int) (Worksheet, error)
}

// Worksheet 表示单个工作表。行号从 1 开始，第 1 行为表头。
type Worksheet interface {
	Title() string
	// Rows 返回包括表头在内的全部行，单元格统一格式化为字符串。
	Rows(ctx context.Context) ([][]string, error)
	AppendRow(ctx context.Context, values []any) error
	UpdateCell(ctx context.Context, row int, column string, value any) error
}

// EnsureWorksheet 返回一个保证存在且第一行为 header 的工作表。
// 已存在的工作表不会重写表头；仅当工作表完全为空时补写一次表头。
func EnsureWorksheet(ctx context.Context, wb Workbook, title string, header []string) (Worksheet, error) {
	ws, err := wb.Worksheet(ctx, title)
	if err == nil {
		rows, err := ws.Rows(ctx)
		if err != nil {
			return nil, fmt.Errorf("read worksheet %s: %w", title, err)
		}
		if len(rows) == 0 {
			if err := ws.AppendRow(ctx, headerValues(header)); err != nil {
				return nil, fmt.Errorf("write header to %s: %w", title, err)
			}
			log.Printf("worksheet %q was empty, header written", title)
		}
		return ws, nil
	}
	if !errors.Is(err, ErrWorksheetNotFound) {
		return nil, fmt.Errorf("open worksheet %s: %w", title, err)
	}

	ws, err = wb.AddWorksheet(ctx, title, DefaultRows, DefaultColumns)
	if err != nil {
		return nil, fmt.Errorf("add worksheet %s: %w", title, err)
	}
	if err := ws.AppendRow(ctx, headerValues(header)); err != nil {
		return nil, fmt.Errorf("write header to %s: %w", title, err)
	}
	log.Printf("worksheet %q created with headers", title)

	return ws, nil
}

func headerValues(header []string) []any {
	values := make([]any, len(header))
	for i, name := range header {
		values[i] = name
	}
	return values
}

// ColumnLetter 把从 0 开始的列下标转换为 A1 记法中的列字母（0→A，26→AA）。
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var letters []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
	}
	return string(letters)
}

// ColumnIndex 是 ColumnLetter 的逆运算，非法输入返回 -1。
func ColumnIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return -1
	}
	index := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return -1
		}
		index = index*26 + int(r-'A'+1)
	}
	return index - 1
}

// FormatCell 把写入单元格的值统一转换为读取时看到的字符串形式。
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
