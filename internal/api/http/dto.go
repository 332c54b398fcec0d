package http

type RoomSummary struct {
	RoomID      string `json:"roomId"`
	PlayerCount int    `json:"playerCount"`
	Status      string `json:"status"`
}

// SettingsResponse tells clients how to render the game before any
// state arrives: board dimensions and countdown length.
type SettingsResponse struct {
	BoardSize     int   `json:"boardSize"`
	TurnDuration  int   `json:"turnDuration"`
	TickMillis    int64 `json:"tickMillis"`
	ForcedCapture bool  `json:"forcedCapture"`
}
