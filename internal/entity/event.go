package entity

// Narrative event tags shipped to the presentation layer. They are flavor
// only: nothing in the game flow reads them back.
const (
	EventTurnStarted = "turn-started"
	EventStrongBlock = "strong-block"
	EventWon         = "won"
	EventLost        = "lost"
	EventDraw        = "draw"
)

// Event describes one narrative moment of a turn. Mark is the mark the event
// talks about (whose turn started, who blocked); Cell is the cell involved
// where that makes sense, -1 otherwise.
type Event struct {
	Type string `json:"type"`
	Mark string `json:"mark,omitempty"`
	Cell int    `json:"cell"`
}

func NewEvent(eventType, mark string, cell int) Event {
	return Event{Type: eventType, Mark: mark, Cell: cell}
}
