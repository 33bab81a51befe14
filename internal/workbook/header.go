package workbook

import (
	"fmt"
	"strconv"
	"strings"
)

// Header 记录表头列名到列下标的映射，用于按列名读取行。
type Header struct {
	names   []string
	indexes map[string]int
}

// NewHeader 根据表头行构造 Header。重复列名以第一次出现为准。
func NewHeader(row []string) Header {
	h := Header{names: make([]string, len(row)), indexes: make(map[string]int, len(row))}
	for i, raw := range row {
		name := strings.TrimSpace(raw)
		h.names[i] = name
		if name == "" {
			continue
		}
		if _, exists := h.indexes[name]; !exists {
			h.indexes[name] = i
		}
	}
	return h
}

// Names 返回表头列名。
func (h Header) Names() []string {
	return h.names
}

// Index 返回列名（或其任一别名）对应的下标。
func (h Header) Index(name string, aliases ...string) (int, bool) {
	if i, ok := h.indexes[name]; ok {
		return i, true
	}
	for _, alias := range aliases {
		if i, ok := h.indexes[alias]; ok {
			return i, true
		}
	}
	return -1, false
}

// Has 判断表头是否包含指定列。
func (h Header) Has(name string) bool {
	_, ok := h.indexes[name]
	return ok
}

// Require 确认表头包含全部必需列。
func (h Header) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !h.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// Cell 返回行中指定下标的单元格；Sheets 会截断行尾空单元格，越界视为空。
func Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// ParseNumber 解析数值单元格，空单元格视为 0。
func ParseNumber(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
