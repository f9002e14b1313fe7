package storage

import "time"

// SetCommand appends a command execution to the guild's history, keeping the
// most recent entries.
func (s *Storage) SetCommand(guildID, channelID, channelName, guildName, userID, username, command, param string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistory = append(record.CommandsHistory, CommandHistory{
		ChannelID:   channelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      userID,
		Username:    username,
		Command:     command,
		Param:       param,
		Datetime:    time.Now(),
	})
	record.CommandsHistory = trimTail(record.CommandsHistory, commandHistoryLimit)

	s.ds.Add(guildID, record)
	return nil
}

func (s *Storage) GetCommandsHistory(guildID string) ([]CommandHistory, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
