package queue

import "court_queue/internal/models"

// Snapshot хранит глубокую копию состояния, которую можно отдавать наружу.
type Snapshot struct {
	Queue            []models.Participant  `json:"queue"`
	CurrentlyPlaying []models.Participant  `json:"currently_playing"`
	History          []models.HistoryEntry `json:"history"`
	Revision         uint64                `json:"revision"`
	// Initialized ложно, пока состояние не загружено из хранилища.
	Initialized bool `json:"initialized"`
}

func copyParticipants(ps []models.Participant) []models.Participant {
	return append(make([]models.Participant, 0, len(ps)), ps...)
}

func copyHistory(hs []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(hs))
	for _, h := range hs {
		h.Players = append(make([]string, 0, len(h.Players)), h.Players...)
		out = append(out, h)
	}
	return out
}
