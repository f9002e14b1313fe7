package player

import "errors"

var (
	ErrNoActiveSession    = errors.New("no active session")
	ErrTransportJoin      = errors.New("failed to join voice channel")
	ErrStreamUnavailable  = errors.New("stream unavailable")
	ErrInvalidVolume      = errors.New("volume must be between 0 and 100")
	ErrInsufficientTracks = errors.New("not enough tracks in queue to shuffle")
	ErrTrackNotFound      = errors.New("track not found")
)
