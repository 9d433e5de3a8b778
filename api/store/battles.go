/* battles.go
 * Contains the methods for interacting with the battles collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeenBattle reports whether a battle with this key has already been
// archived, meaning it was counted in a previous player's battlelog
func (s *Store) SeenBattle(key string) (bool, error) {
	var doc BattleDoc
	err := s.Collections.Battles.FindOne(context.TODO(), bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("battle lookup failed: %w", err)
	}
	return true, nil
}

// ArchiveBattle records a counted battle. An upsert on the key keeps the
// archive duplicate-free even if two ingestion runs overlap.
func (s *Store) ArchiveBattle(doc BattleDoc) error {
	filter := bson.M{"key": doc.Key}
	update := bson.M{"$set": doc}

	var existing BattleDoc
	err := s.Collections.Battles.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing battle failed: %w", err)
	}

	if notFound {
		if _, err := s.Collections.Battles.InsertOne(context.TODO(), doc); err != nil {
			return fmt.Errorf("failed to insert battle: %w", err)
		}
		return nil
	}

	if _, err := s.Collections.Battles.UpdateOne(context.TODO(), filter, update); err != nil {
		return fmt.Errorf("failed to update existing battle: %w", err)
	}
	return nil
}
