/* handlers.go
 * Contains testable handler methods that accept the DiscordSession
 * interface. The runtime wiring against a real session lives in
 * bot_runtime.go
 */

package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/logic"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

// matchupRankingSize is how many opposing cards $best and $worst list
const matchupRankingSize = 5

// newMessageHandler dispatches a message to the matching command handler
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botID string) {
	// To prevent the bot from responding to its own messages
	if message.Author.ID == botID {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$matchup"):
		b.matchupHandler(session, message)

	case startsWith(message.Content, "$best"):
		b.rankingHandler(session, message, false)

	case startsWith(message.Content, "$worst"):
		b.rankingHandler(session, message, true)

	case startsWith(message.Content, "$cards"):
		b.cardsHandler(session, message)

	case startsWith(message.Content, "$stats"):
		b.statsHandler(session, message)
	}
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Matchup Bot\n")
	res.WriteString("`$matchup \"card a\" \"card b\"`: shows how often card a beats card b (and the reverse) in the mined ranked games\n")
	res.WriteString("`$best <card>`: shows the cards this card performs best against\n")
	res.WriteString("`$worst <card>`: shows the cards this card performs worst against\n")
	res.WriteString("`$cards`: lists every card in the catalog\n")
	res.WriteString("`$stats`: shows how many ranked games are behind the numbers\n")
	res.WriteString("There is fuzzy matching on card names, but names with two or more words need to be encased in \" (e.g. \"mega knight\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// matchupHandler handles the $matchup command
func (b *Bot) matchupHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil || len(args) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$matchup \"card a\" \"card b\"`")
		return
	}

	report, err := b.APIPtr.MatchupReport(args[0], args[1])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not look that up: %s", err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, report)
}

// rankingHandler handles the $best and $worst commands
func (b *Bot) rankingHandler(session DiscordSession, message *discordgo.MessageCreate, worst bool) {
	args, err := commandArgs(message.Content)
	if err != nil || len(args) != 1 {
		usage := "$best"
		if worst {
			usage = "$worst"
		}
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Usage: `%s <card>`", usage))
		return
	}

	var name string
	var ranks []logic.MatchupRank
	if worst {
		name, ranks, err = b.APIPtr.WorstMatchups(args[0], matchupRankingSize)
	} else {
		name, ranks, err = b.APIPtr.TopMatchups(args[0], matchupRankingSize)
	}
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not look that up: %s", err))
		return
	}

	direction := "best"
	if worst {
		direction = "worst"
	}
	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s's %s matchups:\n", name, direction))
	for i, rank := range ranks {
		res.WriteString(fmt.Sprintf("%d. %s: %.2f%% winrate over %.0f games\n", i+1, rank.Card, rank.Winrate*100, rank.Games))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// cardsHandler handles the $cards command
func (b *Bot) cardsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	cards := b.APIPtr.Cards()

	var res strings.Builder
	res.WriteString(fmt.Sprintf("The catalog has %d cards:\n", len(cards)))
	res.WriteString(strings.Join(cards, ", "))
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// statsHandler handles the $stats command
func (b *Bot) statsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	stats := b.APIPtr.Stats()
	res := fmt.Sprintf("Counting %d ranked games across a catalog of %d cards", stats.GamesProcessed, stats.CatalogSize)
	session.ChannelMessageSend(message.ChannelID, res)
}

// commandArgs splits a command message into its arguments, honouring double
// quotes around multi-word card names
func commandArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(content)
	if err != nil {
		log.Println("failed to split command:", err)
		return nil, err
	}

	var args []string
	for _, part := range parts[1:] {
		part = strings.Trim(part, "\"“”")
		if part != "" {
			args = append(args, part)
		}
	}
	return args, nil
}

// startsWith is a small helper to keep the dispatch switch readable
func startsWith(content string, prefix string) bool {
	return strings.HasPrefix(content, prefix)
}
