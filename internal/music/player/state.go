package player

// State is the lifecycle state of a guild's playback.
type State int

const (
	StateIdle State = iota
	StateJoining
	StateLoading
	StatePlaying
	StatePaused
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateJoining:
		return "Joining"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// EventKind describes a notification emitted by a session.
type EventKind string

const (
	EventNowPlaying  EventKind = "Now Playing"
	EventTrackFailed EventKind = "Track Failed"
	EventQueueEnded  EventKind = "Queue Ended"
	EventStopped     EventKind = "Playback Stopped"
)

// StringEmoji returns the emoji used when relaying the event to chat.
func (k EventKind) StringEmoji() string {
	m := map[EventKind]string{
		EventNowPlaying:  "▶️",
		EventTrackFailed: "⚠️",
		EventQueueEnded:  "🏁",
		EventStopped:     "⏹",
	}
	return m[k]
}

// Event is delivered on Registry.Events.
type Event struct {
	Kind          EventKind
	GuildID       string
	TextChannelID string
	SessionID     string
	Track         Track
	Err           error
}
