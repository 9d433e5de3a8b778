/* handlers_test.go
 * Contains unit tests for the bot command handlers using a mock Discord
 * session and a preloaded matchup table
 */

package bot

import (
	"strings"
	"testing"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/api"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/matchup"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBot builds a bot over a small preloaded table, no network
func createTestBot(t *testing.T) *Bot {
	t.Helper()
	table := matchup.NewTable([]string{"knight", "mega knight", "wizard"})
	table.ProcessGame(shared.GameInfo{
		Winner:       shared.WinnerTeam,
		TeamDeck:     shared.Deck{Cards: []string{"knight"}},
		OpponentDeck: shared.Deck{Cards: []string{"wizard"}},
	})
	table.DeriveWinrates()

	bot, err := NewBot("test_token", &api.API{Table: table})
	require.NoError(t, err)
	return bot
}

func message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ChannelID: "channel123",
			Content:   content,
			Author:    &discordgo.User{ID: "user123", Username: "testuser"},
		},
	}
}

// TestNewMessageHandler_IgnoresOwnMessages tests the bot does not answer
// itself
func TestNewMessageHandler_IgnoresOwnMessages(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	msg := message("$help")
	msg.Author.ID = "bot-id"
	bot.newMessageHandler(session, msg, "bot-id")

	assert.Empty(t, session.SentMessages)
}

// TestHelpHandler tests the $help reply
func TestHelpHandler(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$help"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "$matchup")
	assert.Contains(t, session.GetLastMessage().Content, "fuzzy matching")
}

// TestMatchupHandler_QuotedNames tests $matchup with a quoted multi-word
// card name
func TestMatchupHandler_QuotedNames(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message(`$matchup "mega knight" wizard`), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "mega knight vs wizard")
	assert.Contains(t, content, "50.00%")
}

// TestMatchupHandler_Observed tests $matchup output for a counted pair
func TestMatchupHandler_Observed(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$matchup knight wizard"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "knight beats wizard 66.67% of the time")
	assert.Contains(t, content, "wizard beats knight 33.33% of the time")
}

// TestMatchupHandler_WrongArgCount tests the usage reply
func TestMatchupHandler_WrongArgCount(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$matchup knight"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "Usage")
}

// TestMatchupHandler_UnknownCard tests the error reply
func TestMatchupHandler_UnknownCard(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$matchup golem wizard"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "golem")
}

// TestBestHandler tests the $best ranking reply
func TestBestHandler(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$best knight"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "knight's best matchups")
	// wizard is the only observed win so it tops the list
	assert.True(t, strings.Contains(content, "1. wizard"), content)
}

// TestWorstHandler tests the $worst ranking reply
func TestWorstHandler(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$worst wizard"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "wizard's worst matchups")
	assert.True(t, strings.Contains(content, "1. knight"), content)
}

// TestCardsHandler tests the $cards listing
func TestCardsHandler(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$cards"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	content := session.GetLastMessage().Content
	assert.Contains(t, content, "3 cards")
	assert.Contains(t, content, "mega knight")
}

// TestStatsHandler tests the $stats reply
func TestStatsHandler(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("$stats"), "bot-id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "1 ranked games")
}

// TestUnknownCommand_NoReply tests that unrelated messages are ignored
func TestUnknownCommand_NoReply(t *testing.T) {
	bot := createTestBot(t)
	session := &MockDiscordSession{}

	bot.newMessageHandler(session, message("hello there"), "bot-id")

	assert.Empty(t, session.SentMessages)
}
