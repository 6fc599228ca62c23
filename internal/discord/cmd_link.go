package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// providerDisplayName renders a provider slug for embeds
func providerDisplayName(provider string) string {
	switch provider {
	case domain.ProviderGithub:
		return "GitHub"
	case domain.ProviderStackexchange:
		return "Stack Exchange"
	default:
		return cases.Title(language.English).String(provider)
	}
}

// linkProviderHandler is the shared flow behind /linkgithub and /linkstack:
// request a fresh authorize URL and DM it to the user. The URL carries a
// short-lived state token, so it goes to DMs rather than the channel.
func linkProviderHandler(provider string) CommandHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferEphemeralResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		result, err := bot.Client.RequestLinkURL(user.ID, provider)
		if err != nil {
			slog.Error("Failed to request link URL", "provider", provider, "error", err)
			respondFriendlyError(s, i, provider, err.Error())
			return
		}

		display := providerDisplayName(provider)
		embed := createEmbed(
			"Connect "+display,
			fmt.Sprintf("Click [this](%s) to link your %s account. This link invalidates in %d minutes",
				result.URL, display, result.ExpiresIn/60),
			0x3498db, // Blue
			"",
		)

		channel, err := s.UserChannelCreate(user.ID)
		if err != nil {
			slog.Error("Failed to open DM channel", "error", err)
			respondError(s, i, MsgDMsClosed)
			return
		}
		if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			slog.Warn("Failed to DM authorization link", "error", err)
			respondError(s, i, MsgDMsClosed)
			return
		}

		respondError(s, i, MsgLinkDMSent)
	}
}

// LinkGithubCommand returns the linkgithub command definition and handler
func LinkGithubCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "linkgithub",
		Description: "Link your GitHub account",
	}
	return cmd, linkProviderHandler(domain.ProviderGithub)
}

// LinkStackCommand returns the linkstack command definition and handler
func LinkStackCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "linkstack",
		Description: "Link your Stack Exchange account",
	}
	return cmd, linkProviderHandler(domain.ProviderStackexchange)
}

// providerChoices builds the option choices for provider arguments
func providerChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Providers))
	for _, p := range domain.Providers {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  providerDisplayName(p),
			Value: p,
		})
	}
	return choices
}

// UnlinkCommand returns the unlink command definition and handler
func UnlinkCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "unlink",
		Description: "Unlink a provider account",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "provider",
				Description: "Provider to unlink",
				Required:    true,
				Choices:     providerChoices(),
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferEphemeralResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		provider := getOptions(i)[0].StringValue()

		if err := bot.Client.Unlink(user.ID, provider); err != nil {
			slog.Error("Failed to unlink", "provider", provider, "error", err)
			respondFriendlyError(s, i, provider, err.Error())
			return
		}

		embed := createEmbed(
			"✅ Account Unlinked",
			fmt.Sprintf("Your **%s** account has been unlinked. The stored token was discarded.", providerDisplayName(provider)),
			0x2ecc71, // Green
			"",
		)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// LinkedCommand returns the linked command definition and handler,
// showing which providers the user has connected.
func LinkedCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "linked",
		Description: "Show which provider accounts you have linked",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferEphemeralResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		providers, err := bot.Client.GetLinkStatus(user.ID)
		if err != nil {
			slog.Error("Failed to get link status", "error", err)
			respondFriendlyError(s, i, "", err.Error())
			return
		}

		if len(providers) == 0 {
			respondError(s, i, MsgNothingLinked)
			return
		}

		names := make([]string, 0, len(providers))
		for _, p := range providers {
			names = append(names, providerDisplayName(p))
		}

		embed := createEmbed(
			"🔗 Linked Accounts",
			"You have linked: **"+strings.Join(names, "**, **")+"**",
			0x3498db, // Blue
			"",
		)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
