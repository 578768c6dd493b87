package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

// MockStorage is an in-memory Storage implementation for tests.
type MockStorage struct {
	mu            sync.Mutex
	Characters    map[string]*npc.Character
	Conversations map[uuid.UUID]*tavern.Conversation
	Relationships map[string]*relationship.State
	GoldByPlayer  map[string]int
	ArmyByPlayer  map[string]map[string]int
	ArtifactsBy   map[string][]string
	Bans          map[string]map[string]bool

	Err error // when set, every operation fails with this error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Characters:    make(map[string]*npc.Character),
		Conversations: make(map[uuid.UUID]*tavern.Conversation),
		Relationships: make(map[string]*relationship.State),
		GoldByPlayer:  make(map[string]int),
		ArmyByPlayer:  make(map[string]map[string]int),
		ArtifactsBy:   make(map[string][]string),
		Bans:          make(map[string]map[string]bool),
	}
}

func (m *MockStorage) SaveConversation(ctx context.Context, conv *tavern.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Conversations[conv.ID] = conv
	return nil
}

func (m *MockStorage) LoadConversation(ctx context.Context, id uuid.UUID) (*tavern.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Conversations[id], nil
}

func (m *MockStorage) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Conversations, id)
	return nil
}

func (m *MockStorage) SaveRelationship(ctx context.Context, npcID, playerID string, s *relationship.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Relationships[npcID+":"+playerID] = s
	return nil
}

func (m *MockStorage) LoadRelationship(ctx context.Context, npcID, playerID string) (*relationship.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Relationships[npcID+":"+playerID], nil
}

func (m *MockStorage) GetCharacter(ctx context.Context, id string) (*npc.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Characters[id], nil
}

func (m *MockStorage) ListCharacters(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]string, 0, len(m.Characters))
	for id := range m.Characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockStorage) TavernRoster(ctx context.Context, mapName, location string) ([]*npc.Character, error) {
	ids, err := m.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var roster []*npc.Character
	for _, id := range ids {
		c := m.Characters[id]
		if c != nil && c.Map == mapName && c.Location == location {
			roster = append(roster, c)
		}
	}
	return roster, nil
}

func (m *MockStorage) Gold(ctx context.Context, playerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.GoldByPlayer[playerID], nil
}

func (m *MockStorage) AddGold(ctx context.Context, playerID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.GoldByPlayer[playerID] += amount
	return nil
}

func (m *MockStorage) SpendGold(ctx context.Context, playerID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.GoldByPlayer[playerID] < amount {
		return fmt.Errorf("insufficient gold: have %d, need %d", m.GoldByPlayer[playerID], amount)
	}
	m.GoldByPlayer[playerID] -= amount
	return nil
}

func (m *MockStorage) RecruitUnit(ctx context.Context, playerID string, unit string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.ArmyByPlayer[playerID] == nil {
		m.ArmyByPlayer[playerID] = make(map[string]int)
	}
	m.ArmyByPlayer[playerID][unit] += count
	return nil
}

func (m *MockStorage) Army(ctx context.Context, playerID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ArmyByPlayer[playerID], nil
}

func (m *MockStorage) AddArtifact(ctx context.Context, playerID string, artifact string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.ArtifactsBy[playerID] = append(m.ArtifactsBy[playerID], artifact)
	return nil
}

func (m *MockStorage) Artifacts(ctx context.Context, playerID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ArtifactsBy[playerID], nil
}

func (m *MockStorage) BanFromTavern(ctx context.Context, playerID string, mapName, location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.Bans[playerID] == nil {
		m.Bans[playerID] = make(map[string]bool)
	}
	m.Bans[playerID][mapName+"/"+location] = true
	return nil
}

func (m *MockStorage) IsBannedFrom(ctx context.Context, playerID string, mapName, location string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.Bans[playerID][mapName+"/"+location], nil
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	return nil
}

func (m *MockStorage) Close() error { return nil }
