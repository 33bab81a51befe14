package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dietlog/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidNumber = errors.New("invalid number")
	errInvalidDate   = errors.New("invalid date")
)

// fieldError 记录是哪一个表单字段解析失败
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (e *fieldError) Unwrap() error {
	return e.err
}

// formValues 收集提交的原始字符串，校验失败时原样回填到表单
func formValues(c *gin.Context, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = c.PostForm(field)
	}
	return values
}

// parseFloatField 空值按 0 处理，允许千分位逗号
func parseFloatField(values map[string]string, field string) (float64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(values[field]), ",", "")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &fieldError{field: field, err: errInvalidNumber}
	}
	return v, nil
}

// parseDay 解析 YYYY-MM-DD，空值返回 fallback 当天
func parseDay(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return startOfDay(fallback), nil
	}
	day, err := time.ParseInLocation(service.DateLayout, raw, fallback.Location())
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return day, nil
}

// parseClock 接受 HH:MM 与 HH:MM:SS，返回当天零点起的偏移
func parseClock(raw string, fallback time.Time) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback.Sub(startOfDay(fallback)).Truncate(time.Second), nil
	}
	for _, layout := range []string{service.TimeLayout, "15:04"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Duration(parsed.Hour())*time.Hour +
				time.Duration(parsed.Minute())*time.Minute +
				time.Duration(parsed.Second())*time.Second, nil
		}
	}
	return 0, errInvalidDate
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
