package storage

import (
	"context"
	"fmt"

	"court_queue/internal/config"
	"court_queue/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsGateway хранит очередь и историю на двух листах Google Sheets.
type SheetsGateway struct {
	srv           *sheets.Service
	spreadsheetID string
	queueRange    string
	historyRange  string
}

func NewSheetsGateway(srv *sheets.Service, cfg config.SheetsConfig) *SheetsGateway {
	return &SheetsGateway{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		queueRange:    cfg.QueueRange,
		historyRange:  cfg.HistoryRange,
	}
}

// NewSheetsGatewayFromFile авторизуется ключом сервисного аккаунта.
func NewSheetsGatewayFromFile(ctx context.Context, cfg config.SheetsConfig) (*SheetsGateway, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("клиент google sheets: %w", err)
	}
	return NewSheetsGateway(srv, cfg), nil
}

func (g *SheetsGateway) Load(ctx context.Context) ([]models.Participant, []models.HistoryEntry, error) {
	resp, err := g.srv.Spreadsheets.Values.BatchGet(g.spreadsheetID).
		Ranges(g.queueRange, g.historyRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, nil, fmt.Errorf("чтение таблицы: %w", err)
	}

	var queueRows, historyRows [][]string
	for i, vr := range resp.ValueRanges {
		switch i {
		case 0:
			queueRows = cells(vr.Values)
		case 1:
			historyRows = cells(vr.Values)
		}
	}
	return DecodeQueue(queueRows), DecodeHistory(historyRows), nil
}

// Save сначала очищает оба диапазона, иначе после укорачивания очереди
// в таблице остались бы старые строки.
func (g *SheetsGateway) Save(ctx context.Context, queue []models.Participant, history []models.HistoryEntry) error {
	_, err := g.srv.Spreadsheets.Values.BatchClear(g.spreadsheetID, &sheets.BatchClearValuesRequest{
		Ranges: []string{g.queueRange, g.historyRange},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("очистка таблицы: %w", err)
	}

	var data []*sheets.ValueRange
	if rows := EncodeQueue(queue); len(rows) > 0 {
		data = append(data, &sheets.ValueRange{Range: g.queueRange, Values: values(rows)})
	}
	if rows := EncodeHistory(history); len(rows) > 0 {
		data = append(data, &sheets.ValueRange{Range: g.historyRange, Values: values(rows)})
	}
	if len(data) == 0 {
		return nil
	}

	_, err = g.srv.Spreadsheets.Values.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("запись таблицы: %w", err)
	}
	return nil
}

func values(rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cellsRow := make([]interface{}, 0, len(row))
		for _, c := range row {
			cellsRow = append(cellsRow, c)
		}
		out = append(out, cellsRow)
	}
	return out
}

func cells(vals [][]interface{}) [][]string {
	out := make([][]string, 0, len(vals))
	for _, row := range vals {
		strRow := make([]string, 0, len(row))
		for _, c := range row {
			strRow = append(strRow, fmt.Sprint(c))
		}
		out = append(out, strRow)
	}
	return out
}
