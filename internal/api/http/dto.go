package http

import "royale-chess/internal/room"

// RoomListResponse is the payload of GET /rooms.
type RoomListResponse struct {
	Rooms []room.Info `json:"rooms"`
}

// EngineConfigView exposes the runtime engine tuning, minus transport
// secrets.
type EngineConfigView struct {
	BoardSize            int     `json:"boardSize"`
	MaxPlayers           int     `json:"maxPlayers"`
	MinPlayers           int     `json:"minPlayers"`
	CooldownSeconds      int     `json:"cooldownSeconds"`
	GraceSeconds         int     `json:"graceSeconds"`
	ShrinkInitialSeconds int     `json:"shrinkInitialSeconds"`
	ShrinkRepeatSeconds  int     `json:"shrinkRepeatSeconds"`
	ShrinkCellsPerEvent  int     `json:"shrinkCellsPerEvent"`
	WoodsDensity         float64 `json:"woodsDensity"`
	RetentionHours       int     `json:"retentionHours"`
}
