package storage

import "time"

// AppendTrack records a track that started playing in the guild.
func (s *Storage) AppendTrack(guildID, title, url, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.TracksHistory = append(record.TracksHistory, TrackHistory{
		Title:    title,
		URL:      url,
		Source:   source,
		Datetime: time.Now(),
	})
	record.TracksHistory = trimTail(record.TracksHistory, tracksHistoryLimit)

	s.ds.Add(guildID, record)
	return nil
}

// GetTracksHistory returns recently played tracks, oldest first.
func (s *Storage) GetTracksHistory(guildID string) ([]TrackHistory, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.TracksHistory, nil
}
