package bot

import (
	"sync"

	"bjtrainer/internal/game"
	"bjtrainer/internal/pacer"
)

// table is one chat's training session. mu serialises handlers and the
// pacer's steps.
type table struct {
	mu      sync.Mutex
	session *game.Session
	pacer   *pacer.Pacer
}

type tables struct {
	mu     sync.RWMutex
	byChat map[int64]*table
}

func newTables() *tables {
	return &tables{
		byChat: make(map[int64]*table),
	}
}

func (t *tables) Get(chatID int64) *table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byChat[chatID]
}

// GetOrCreate returns the chat's table, creating it with create if needed.
func (t *tables) GetOrCreate(chatID int64, create func() *table) *table {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tb, ok := t.byChat[chatID]; ok {
		return tb
	}
	tb := create()
	t.byChat[chatID] = tb
	return tb
}

func (t *tables) Delete(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byChat, chatID)
}

func (t *tables) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byChat)
}
