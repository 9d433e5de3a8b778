/* test_mocks.go
 * Contains mock structures for testing the API package and its consumers
 */

package api

import (
	"context"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Archived battles keyed by battle key
	Battles map[string]store.BattleDoc
	// Recorded run summaries
	Runs []store.RunDoc

	// Error injection for testing error paths
	SeenBattleError    error
	ArchiveBattleError error
	RecordRunError     error

	SeasonName   string
	DatabaseName string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with default values
func NewMockStore(season string) *MockStore {
	return &MockStore{
		Battles:      make(map[string]store.BattleDoc),
		SeasonName:   season,
		DatabaseName: "test_db",
	}
}

// SeenBattle mock implementation
func (m *MockStore) SeenBattle(key string) (bool, error) {
	if m.SeenBattleError != nil {
		return false, m.SeenBattleError
	}
	_, seen := m.Battles[key]
	return seen, nil
}

// ArchiveBattle mock implementation
func (m *MockStore) ArchiveBattle(doc store.BattleDoc) error {
	if m.ArchiveBattleError != nil {
		return m.ArchiveBattleError
	}
	m.Battles[doc.Key] = doc
	return nil
}

// RecordRun mock implementation
func (m *MockStore) RecordRun(doc store.RunDoc) error {
	if m.RecordRunError != nil {
		return m.RecordRunError
	}
	m.Runs = append(m.Runs, doc)
	return nil
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

// GetSeason mock implementation
func (m *MockStore) GetSeason() string {
	return m.SeasonName
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store Interface
var _ store.Interface = (*MockStore)(nil)
