/* models.go
 * This file contains the value types that are shared between sub packages
 */

package shared

// Winner marks which side of a battle won. It is a closed set of three
// values so the accumulator can switch over it exhaustively.
type Winner int

const (
	WinnerTeam Winner = iota
	WinnerOpponent
	WinnerDraw
)

// String returns the lowercase name for a Winner value
func (w Winner) String() string {
	switch w {
	case WinnerTeam:
		return "team"
	case WinnerOpponent:
		return "opponent"
	case WinnerDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Deck holds the lowercased card names one side brought into a battle.
// SupportCards is the princess tower troop; it is a slice for consistency
// with the official API shape even though there is only ever one entry.
type Deck struct {
	Cards        []string
	SupportCards []string
}

// GameInfo is a single decoded battle outcome ready for the accumulator
type GameInfo struct {
	Winner         Winner
	TeamCrowns     int
	OpponentCrowns int
	TeamDeck       Deck
	OpponentDeck   Deck
}
