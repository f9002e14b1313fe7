package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}

// FindUserVoiceState finds the voice state of a user
func FindUserVoiceState(s *discordgo.Session, guildID, userID string) (*VoiceState, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID && vs.ChannelID != "" {
			return &VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

// Names resolves guild and channel names from state, falling back to the API.
func Names(s *discordgo.Session, guildID, channelID string) (guildName, channelName string) {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		if channel, err = s.Channel(channelID); err != nil {
			channel = nil
		}
	}
	if channel != nil {
		channelName = channel.Name
	}

	guild, err := s.State.Guild(guildID)
	if err != nil {
		if guild, err = s.Guild(guildID); err != nil {
			guild = nil
		}
	}
	if guild != nil {
		guildName = guild.Name
	}
	return guildName, channelName
}
