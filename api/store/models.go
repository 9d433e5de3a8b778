/* models.go
 * This file contains the structs that map to battle archive documents
 */

package store

import "go.mongodb.org/mongo-driver/bson/primitive"

// BattleDoc archives one counted battle. Key is side-independent (battle
// time plus both player tags, sorted), so the same game seen from both
// players' battlelogs maps to a single document.
type BattleDoc struct {
	Id         primitive.ObjectID `bson:"_id,omitempty"`
	Key        string             `bson:"key"`
	Season     string             `bson:"season,omitempty"`
	BattleTime string             `bson:"battle_time,omitempty"`
	PlayerTags []string           `bson:"player_tags,omitempty"`
	Type       string             `bson:"type,omitempty"`
}

// RunDoc summarises one completed ingestion run over a season's top ladder
type RunDoc struct {
	Id               primitive.ObjectID `bson:"_id,omitempty"`
	Season           string             `bson:"season"`
	Limit            int                `bson:"limit"`
	PlayersProcessed int                `bson:"players_processed"`
	GamesProcessed   int                `bson:"games_processed"`
	FinishedAt       int64              `bson:"finished_at"`
}
