package room

import (
	"log"
	"sync"
	"time"

	"royale-chess/internal/config"
)

// Store is the process-wide room registry.
type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	Rooms() []*Room
}

// Manager creates rooms on first reference and reaps them once idle past the
// retention window. Broadcasting is injected late because the ws hub needs
// the manager first.
type Manager struct {
	mu    sync.Mutex
	store Store
	cfg   config.Config
	bc    Broadcaster
}

func NewManager(s Store, cfg config.Config) *Manager {
	return &Manager{store: s, cfg: cfg}
}

func (m *Manager) SetBroadcaster(bc Broadcaster) {
	m.bc = bc
}

// GetOrCreate returns the room with the given id, creating and starting its
// actor when the id is unknown.
func (m *Manager) GetOrCreate(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.store.GetRoom(id); ok {
		select {
		case <-r.Done():
			// Stopped but not yet dropped from the store; replace it.
			m.store.DeleteRoom(id)
		default:
			r.touch()
			return r
		}
	}
	r := New(id, m.cfg, m.bc)
	m.store.SaveRoom(r)
	go r.Run()
	log.Printf("room %s created", id)
	return r
}

func (m *Manager) Get(id string) (*Room, bool) {
	return m.store.GetRoom(id)
}

func (m *Manager) List() []Info {
	rooms := m.store.Rooms()
	out := make([]Info, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	return out
}

// StartReaper sweeps periodically and deletes rooms with no accepted action
// inside the retention window. It only reads the room's atomic activity
// stamp, never its internals.
func (m *Manager) StartReaper(stop <-chan struct{}) {
	sweep := time.Duration(m.cfg.ReapSweepMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(sweep)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.reap(time.Now())
			}
		}
	}()
}

// reap holds the manager lock so a room cannot be stopped between
// GetOrCreate handing it out (which refreshes its activity stamp) and the
// idle check here.
func (m *Manager) reap(now time.Time) {
	retention := time.Duration(m.cfg.RetentionHours) * time.Hour
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.store.Rooms() {
		if now.Sub(r.LastActivity()) < retention {
			continue
		}
		r.Stop()
		m.store.DeleteRoom(r.ID)
		log.Printf("room %s reaped after %s idle", r.ID, now.Sub(r.LastActivity()).Truncate(time.Second))
	}
}
