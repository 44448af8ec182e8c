package ws

import "royale-chess/internal/room"

type RoomManager interface {
	GetOrCreate(id string) *room.Room
	Get(id string) (*room.Room, bool)
}
