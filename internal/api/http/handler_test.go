package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"royale-chess/internal/config"
	"royale-chess/internal/room"
	"royale-chess/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() (*gin.Engine, *room.Manager) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		BoardSize:            200,
		MaxPlayers:           20,
		MinPlayers:           2,
		CooldownSeconds:      5,
		GraceSeconds:         300,
		ShrinkInitialSeconds: 60,
		ShrinkRepeatSeconds:  1,
		ShrinkCellsPerEvent:  2,
		WoodsDensity:         0.05,
		RetentionHours:       24,
	}
	rm := room.NewManager(store.NewMemoryStore(), cfg)

	r := gin.New()
	r.GET("/health", HealthHandler())
	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/config", GetConfigHandler(cfg))
	return r, rm
}

func TestHealthHandler(t *testing.T) {
	r, _ := testRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListRoomsHandler(t *testing.T) {
	r, rm := testRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/rooms", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res RoomListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Rooms)

	created := rm.GetOrCreate("lobby-1")
	defer created.Stop()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "lobby-1", res.Rooms[0].ID)
	assert.Equal(t, "lobby", res.Rooms[0].Phase)
}

func TestGetConfigHandler(t *testing.T) {
	r, _ := testRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/config", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Config EngineConfigView `json:"config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 200, res.Config.BoardSize)
	assert.Equal(t, 5, res.Config.CooldownSeconds)
	assert.NotContains(t, w.Body.String(), "admin", "tuning endpoint never leaks credentials")
}
