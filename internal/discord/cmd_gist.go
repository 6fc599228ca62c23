package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// CreateGistCommand returns the creategist command definition and handler.
// The gist is created with the invoking user's own linked GitHub token, so
// it shows up under their account.
func CreateGistCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "creategist",
		Description: "Create a gist on your linked GitHub account",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "filename",
				Description: "Name of the file, e.g. main.go",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "content",
				Description: "File contents",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		options := getOptions(i)
		filename := options[0].StringValue()
		content := options[1].StringValue()

		// Codeblock fences are a discord habit, not file content
		content = strings.TrimSpace(content)
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")

		token, err := bot.Client.GetAccessToken(user.ID, domain.ProviderGithub)
		if err != nil {
			slog.Error("Failed to fetch GitHub token", "error", err)
			respondFriendlyError(s, i, domain.ProviderGithub, err.Error())
			return
		}

		gist, err := bot.Github.CreateGist(context.Background(), token, map[string]string{filename: content})
		if err != nil {
			slog.Error("Failed to create gist", "error", err)
			respondFriendlyError(s, i, domain.ProviderGithub, err.Error())
			return
		}

		embed := createEmbed("Gist creation", gist.HTMLURL, 0x2ecc71, "")
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Files", Value: filename, Inline: false},
		}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// GithubUserCommand returns the githubuser command definition and handler,
// a quick way to verify which GitHub account is linked.
func GithubUserCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "githubuser",
		Description: "Show the GitHub account linked to you",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferEphemeralResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		token, err := bot.Client.GetAccessToken(user.ID, domain.ProviderGithub)
		if err != nil {
			slog.Error("Failed to fetch GitHub token", "error", err)
			respondFriendlyError(s, i, domain.ProviderGithub, err.Error())
			return
		}

		ghUser, err := bot.Github.GetAuthenticatedUser(context.Background(), token)
		if err != nil {
			slog.Error("Failed to fetch GitHub user", "error", err)
			respondFriendlyError(s, i, domain.ProviderGithub, err.Error())
			return
		}

		respondError(s, i, fmt.Sprintf("Linked GitHub account: **%s**", ghUser.Login))
	}

	return cmd, handler
}
