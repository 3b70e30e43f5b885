package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

// GameMapStorage is the in-process GameStore used with STORAGE_MODE=memory.
type GameMapStorage struct {
	mu        sync.RWMutex
	sgf       map[string]string
	records   map[string]game.Record
	pageLimit int
}

func NewGameMapStorage(pageLimit int) *GameMapStorage {
	if pageLimit <= 0 {
		pageLimit = 20
	}
	return &GameMapStorage{
		sgf:       make(map[string]string),
		records:   make(map[string]game.Record),
		pageLimit: pageLimit,
	}
}

func (m *GameMapStorage) GenerateGameKey(ctx context.Context) string {
	return uuid.New().String()
}

func (m *GameMapStorage) SaveSGF(ctx context.Context, key string, sgfText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sgf[key] = sgfText
	return nil
}

func (m *GameMapStorage) LoadSGF(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.sgf[key]
	if !ok {
		return "", errs.ErrGameNotFound
	}
	return text, nil
}

func (m *GameMapStorage) PutGame(ctx context.Context, record game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.GameKey] = record
	return nil
}

func (m *GameMapStorage) GetGameByGameKey(ctx context.Context, key string) (game.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[key]
	if !ok {
		return game.Record{}, errs.ErrGameNotFound
	}
	return record, nil
}

func (m *GameMapStorage) ListGames(ctx context.Context, page int) ([]game.Record, error) {
	m.mu.RLock()
	all := make([]game.Record, 0, len(m.records))
	for _, record := range m.records {
		record.Sgf = ""
		all = append(all, record)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].GameKey < all[j].GameKey
		}
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if page < 1 {
		page = 1
	}
	start := (page - 1) * m.pageLimit
	if start >= len(all) {
		return []game.Record{}, nil
	}
	end := min(start+m.pageLimit, len(all))
	return all[start:end], nil
}
