/* runs.go
 * Contains the methods for interacting with the ingest_runs collection
 */

package store

import (
	"context"
	"fmt"
)

// RecordRun inserts a summary document for a finished ingestion run
func (s *Store) RecordRun(doc RunDoc) error {
	if doc.Season == "" {
		doc.Season = s.Season
	}
	if _, err := s.Collections.Runs.InsertOne(context.TODO(), doc); err != nil {
		return fmt.Errorf("failed to record ingest run: %w", err)
	}
	return nil
}
