package entity

const botIDPrefix = "bot:"

type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func NewBotPlayer(gameID string) *Player {
	return &Player{
		ID:     botIDPrefix + gameID,
		GameID: gameID,
	}
}

func (that *Player) IsBot() bool {
	return len(that.ID) >= len(botIDPrefix) && that.ID[:len(botIDPrefix)] == botIDPrefix
}
