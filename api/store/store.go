/* store.go
 * Contains the Store struct and NewStore function. The methods for this
 * package are split across battles.go and runs.go, one file per collection.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Season      string
	Collections struct {
		Battles *mongo.Collection
		Runs    *mongo.Collection
	}
}

// NewStore initialises the mongo connection and binds the collections used
// by the battle archive
func NewStore(dbName string, mongoURI string, season string) (*Store, error) {
	if dbName == "" || season == "" {
		return nil, fmt.Errorf("dbName and season are required")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		Season:   season,
	}
	s.Collections.Battles = db.Collection("battles")
	s.Collections.Runs = db.Collection("ingest_runs")
	return s, nil
}
