package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/falsedev/TechStruck_Go/internal/domain"
	"github.com/falsedev/TechStruck_Go/internal/stackexchange"
)

// StackRepCommand returns the stackrep command definition and handler
func StackRepCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "stackrep",
		Description: "Show your Stack Overflow reputation",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		token, err := bot.Client.GetAccessToken(user.ID, domain.ProviderStackexchange)
		if err != nil {
			slog.Error("Failed to fetch Stack Exchange token", "error", err)
			respondFriendlyError(s, i, domain.ProviderStackexchange, err.Error())
			return
		}

		info, err := bot.Stack.Me(context.Background(), token, stackexchange.SiteStackOverflow)
		if err != nil {
			slog.Error("Failed to fetch Stack Overflow profile", "error", err)
			respondFriendlyError(s, i, domain.ProviderStackexchange, err.Error())
			return
		}

		embed := createEmbed(
			"Stack Overflow Reputation",
			fmt.Sprintf("**%s** has **%d** reputation", info.DisplayName, info.Reputation),
			0xf48024, // Stack Overflow orange
			"",
		)
		if info.Link != "" {
			embed.URL = info.Link
		}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
