package models

// Participant описывает участника в очереди на корт.
type Participant struct {
	Name string `json:"name"`
	Paid bool   `json:"paid"`
}

// HistoryEntry описывает завершённую игру: кто занимал корт и когда его освободили.
type HistoryEntry struct {
	Players   []string `json:"players"`
	Timestamp string   `json:"timestamp"`
}

// Names возвращает имена участников в порядке очереди.
func Names(ps []Participant) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names
}
