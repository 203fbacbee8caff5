package queue

// qerr это сравнимая ошибка, чтобы errors.Is работал с константами.
type qerr string

func (e qerr) Error() string { return string(e) }

var (
	ErrOutOfRange       = qerr("position out of range")
	ErrNotEnoughPlayers = qerr("not enough players in the queue")
	ErrPairOverflow     = qerr("currently playing holds at most two participants")
)
