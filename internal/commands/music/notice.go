package music

import (
	"fmt"

	"github.com/keshon/jukebox/internal/music/player"
)

// Notice renders the chat message for an event. Stopped events are already
// answered by the stop command.
func Notice(ev player.Event) (string, bool) {
	emoji := ev.Kind.StringEmoji()
	switch ev.Kind {
	case player.EventNowPlaying:
		return fmt.Sprintf("%s Now playing: **%s**", emoji, ev.Track.DisplayTitle()), true
	case player.EventTrackFailed:
		return fmt.Sprintf("%s Could not play **%s**, skipping.", emoji, ev.Track.DisplayTitle()), true
	case player.EventQueueEnded:
		return fmt.Sprintf("%s Queue finished, leaving the voice channel.", emoji), true
	default:
		return "", false
	}
}
