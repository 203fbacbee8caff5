package storage

import (
	"strconv"
	"strings"

	"court_queue/internal/models"
)

const playersSep = ", "

// Табличный формат: очередь — (позиция с 1, имя, "Yes"|"No"),
// история — (имена через ", ", метка времени).

func paidCell(paid bool) string {
	if paid {
		return "Yes"
	}
	return "No"
}

// EncodeQueue переводит очередь в строки таблицы.
func EncodeQueue(queue []models.Participant) [][]string {
	rows := make([][]string, 0, len(queue))
	for i, p := range queue {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Name, paidCell(p.Paid)})
	}
	return rows
}

// DecodeQueue читает строки таблицы очереди. Строки идут в порядке очереди.
func DecodeQueue(rows [][]string) []models.Participant {
	queue := make([]models.Participant, 0, len(rows))
	for _, row := range rows {
		row = pad(row, 3)
		queue = append(queue, models.Participant{Name: row[1], Paid: row[2] == "Yes"})
	}
	return queue
}

func EncodeHistory(history []models.HistoryEntry) [][]string {
	rows := make([][]string, 0, len(history))
	for _, h := range history {
		rows = append(rows, []string{strings.Join(h.Players, playersSep), h.Timestamp})
	}
	return rows
}

func DecodeHistory(rows [][]string) []models.HistoryEntry {
	history := make([]models.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		row = pad(row, 2)
		history = append(history, models.HistoryEntry{Players: splitPlayers(row[0]), Timestamp: row[1]})
	}
	return history
}

func splitPlayers(cell string) []string {
	if cell == "" {
		return []string{}
	}
	return strings.Split(cell, playersSep)
}

func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
