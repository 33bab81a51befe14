package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dietlog/internal/workbook"
)

// MaxNoteRunes 是每日笔记的最大长度
const MaxNoteRunes = 1000

var (
	// ErrNoteEmpty 笔记去除空白后为空时返回
	ErrNoteEmpty = errors.New("note is empty")
	// ErrNoteTooLong 笔记超出长度限制时返回
	ErrNoteTooLong = errors.New("note too long")
)

// NoteService 负责 Daily_Notes 表，仅追加，同一天允许多条
type NoteService struct {
	sheet workbook.Worksheet
	now   func() time.Time
}

// NewNoteService 构造 NoteService
func NewNoteService(sheet workbook.Worksheet) *NoteService {
	return &NoteService{sheet: sheet, now: time.Now}
}

// Append 追加一条 (date, note, created_at)。换行统一为 \n 后再计算长度。
func (s *NoteService) Append(ctx context.Context, date time.Time, text string) (*DailyNote, error) {
	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoteEmpty
	}
	if utf8.RuneCountInString(text) > MaxNoteRunes {
		return nil, fmt.Errorf("%w: at most %d characters", ErrNoteTooLong, MaxNoteRunes)
	}

	note := DailyNote{
		Date:      date.Format(DateLayout),
		Note:      text,
		CreatedAt: s.now().Format(time.RFC3339),
	}
	if err := s.sheet.AppendRow(ctx, []any{note.Date, note.Note, note.CreatedAt}); err != nil {
		return nil, fmt.Errorf("append note: %w", err)
	}
	return &note, nil
}

// List 返回笔记，最新写入的在前；date 非空时只返回该日期的笔记
func (s *NoteService) List(ctx context.Context, date string) ([]DailyNote, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	notes, err := parseNotes(rows)
	if err != nil {
		return nil, fmt.Errorf("parse notes: %w", err)
	}

	date = strings.TrimSpace(date)
	filtered := make([]DailyNote, 0, len(notes))
	for _, note := range notes {
		if date != "" && note.Date != date {
			continue
		}
		filtered = append(filtered, note)
	}
	slices.Reverse(filtered)
	return filtered, nil
}

// normalizeNewlines 把表单提交的 CRLF 换行统一为 LF，与浏览器 maxlength 的计数方式一致
func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
