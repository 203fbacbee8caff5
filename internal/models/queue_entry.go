package models

import "gorm.io/gorm"

// QueueRow хранит строку таблицы очереди (position, name, "Yes"|"No").
type QueueRow struct {
	gorm.Model
	Position int    `gorm:"index;not null"` // позиция в очереди, начиная с 1
	Name     string `gorm:"not null"`
	Paid     string `gorm:"size:3;not null"` // "Yes" или "No"
}

// HistoryRow хранит строку таблицы истории (players, timestamp).
type HistoryRow struct {
	gorm.Model
	Players   string // имена через ", "
	Timestamp string `gorm:"not null"`
}
