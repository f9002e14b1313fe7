package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

const EmbedColor = 0xb01e66

// MessageEmbed sends an embed to a channel.
func MessageEmbed(s *discordgo.Session, channelID string, msg *discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageSendEmbed(channelID, msg)
	return err
}

// replyEmbed renders a reply. A first line in bold becomes the title.
func replyEmbed(text string) *discordgo.MessageEmbed {
	e := embed.NewEmbed().SetColor(EmbedColor)
	if first, rest, ok := strings.Cut(text, "\n"); ok && strings.HasSuffix(first, ":**") {
		e = e.SetTitle(strings.ReplaceAll(first, "**", "")).SetDescription(rest)
	} else {
		e = e.SetDescription(text)
	}
	return e.MessageEmbed
}

// replyTo returns a music.Request reply func bound to a channel.
func replyTo(s *discordgo.Session, channelID string) func(string) error {
	return func(text string) error {
		return MessageEmbed(s, channelID, replyEmbed(text))
	}
}
