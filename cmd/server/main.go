package main

import (
	"log"

	httpapi "royale-chess/internal/api/http"
	"royale-chess/internal/api/ws"
	"royale-chess/internal/config"
	"royale-chess/internal/room"
	"royale-chess/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg)
	hub := ws.NewHub(rm, cfg.AdminPassword)
	rm.SetBroadcaster(hub)

	stop := make(chan struct{})
	defer close(stop)
	rm.StartReaper(stop)

	r := httpapi.SetupRouter(rm, cfg, hub)
	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
