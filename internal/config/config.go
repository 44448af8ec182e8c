package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr      string
	AdminPassword string

	BoardSize  int
	MaxPlayers int
	MinPlayers int

	CooldownSeconds      int
	GraceSeconds         int
	ShrinkInitialSeconds int
	ShrinkRepeatSeconds  int
	ShrinkCellsPerEvent  int

	WoodsDensity  float64
	SpawnInset    int
	SpawnMinDist  float64
	SpawnAttempts int

	RetentionHours   int
	ReapSweepMinutes int
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:             getenvStr("HTTP_ADDR", ":8080"),
		AdminPassword:        getenvStr("ADMIN_PASSWORD", "admin"),
		BoardSize:            getenvInt("BOARD_SIZE", 200),
		MaxPlayers:           getenvInt("MAX_PLAYERS", 20),
		MinPlayers:           getenvInt("MIN_PLAYERS", 2),
		CooldownSeconds:      getenvInt("COOLDOWN_SECONDS", 5),
		GraceSeconds:         getenvInt("GRACE_SECONDS", 300),
		ShrinkInitialSeconds: getenvInt("SHRINK_INITIAL_SECONDS", 60),
		ShrinkRepeatSeconds:  getenvInt("SHRINK_REPEAT_SECONDS", 1),
		ShrinkCellsPerEvent:  getenvInt("SHRINK_CELLS_PER_EVENT", 2),
		WoodsDensity:         getenvFloat("WOODS_DENSITY", 0.05),
		SpawnInset:           getenvInt("SPAWN_INSET", 5),
		SpawnMinDist:         getenvFloat("SPAWN_MIN_DIST", 20),
		SpawnAttempts:        getenvInt("SPAWN_ATTEMPTS", 1000),
		RetentionHours:       getenvInt("RETENTION_HOURS", 24),
		ReapSweepMinutes:     getenvInt("REAP_SWEEP_MINUTES", 60),
	}
}
