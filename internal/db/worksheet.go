package db

import "gorm.io/gorm"

// Worksheet 对应工作簿中的一张具名工作表
// RowCount/ColumnCount 仅记录创建时申请的容量，与实际行数无关
type Worksheet struct {
	gorm.Model
	Title       string `gorm:"uniqueIndex"`
	RowCount    int
	ColumnCount int
}

// Row 保存工作表中的一行，Position 从 1 开始，与表格行号一致
// Cells 以 JSON 数组存储，保持写入时的格式化字符串
type Row struct {
	gorm.Model
	WorksheetID uint     `gorm:"index:idx_row_position,unique"`
	Position    int      `gorm:"index:idx_row_position,unique"`
	Cells       []string `gorm:"serializer:json"`
}

// TableName 固定表名，避免与业务语义混淆
func (Row) TableName() string {
	return "worksheet_rows"
}
