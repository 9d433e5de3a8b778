/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	SeenBattle(key string) (bool, error)
	ArchiveBattle(doc BattleDoc) error
	RecordRun(doc RunDoc) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetSeason() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetSeason returns the season this store is archiving
func (s *Store) GetSeason() string {
	return s.Season
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
