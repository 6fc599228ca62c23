package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		msg      string
		expected string
	}{
		{
			name:     "github not linked",
			provider: domain.ProviderGithub,
			msg:      "API error: No account is linked for that provider",
			expected: MsgGithubNotLinked,
		},
		{
			name:     "stackexchange not linked",
			provider: domain.ProviderStackexchange,
			msg:      "API error: No account is linked for that provider",
			expected: MsgStackNotLinked,
		},
		{
			name:     "no provider context",
			provider: "",
			msg:      domain.ErrMsgNotLinked,
			expected: MsgNothingLinked,
		},
		{
			name:     "expired link",
			provider: domain.ProviderGithub,
			msg:      "API error: Expired link. Request a fresh link and try again.",
			expected: MsgLinkExpired,
		},
		{
			name:     "server unreachable",
			provider: domain.ProviderGithub,
			msg:      "max retries exceeded: server error: 503",
			expected: MsgServerError,
		},
		{
			name:     "unknown error is passed through",
			provider: domain.ProviderGithub,
			msg:      "API error: something odd",
			expected: "❌ something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.provider, tt.msg))
		})
	}
}

func TestProviderDisplayName(t *testing.T) {
	assert.Equal(t, "GitHub", providerDisplayName(domain.ProviderGithub))
	assert.Equal(t, "Stack Exchange", providerDisplayName(domain.ProviderStackexchange))
	assert.Equal(t, "Gitlab", providerDisplayName("gitlab"))
}

func TestCommandsEqual(t *testing.T) {
	a := &discordgo.ApplicationCommand{Name: "linkgithub", Description: "Link your GitHub account"}
	b := &discordgo.ApplicationCommand{Name: "linkgithub", Description: "Link your GitHub account"}

	assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{b}))

	b.Description = "changed"
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{b}))
}

func TestCommandEqual_Options(t *testing.T) {
	mk := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "unlink",
			Description: "Unlink a provider account",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "provider",
					Description: "Provider to unlink",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "GitHub", Value: "github"},
					},
				},
			},
		}
	}

	a, b := mk(), mk()
	assert.True(t, commandEqual(a, b))

	b.Options[0].Choices[0].Value = "stackexchange"
	assert.False(t, commandEqual(a, b))
}

func TestRegistry_Register(t *testing.T) {
	registry := NewCommandRegistry()
	cmd, handler := LinkGithubCommand()
	registry.Register(cmd, handler)

	assert.Contains(t, registry.Commands, "linkgithub")
	assert.Contains(t, registry.Handlers, "linkgithub")
}
