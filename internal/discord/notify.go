package discord

import (
	"context"
	"log"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/internal/music/player"
)

// relayEvents posts session events to their text channels until ctx is done.
func (b *Bot) relayEvents(ctx context.Context) {
	for {
		select {
		case ev := <-b.players.Events():
			b.handleEvent(ev)
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bot) handleEvent(ev player.Event) {
	if ev.Kind == player.EventNowPlaying && b.storage != nil {
		if err := b.storage.AppendTrack(ev.GuildID, ev.Track.DisplayTitle(), ev.Track.URL, ev.Track.Source); err != nil {
			log.Printf("[WARN] Failed to record track history for guild %s: %v", ev.GuildID, err)
		}
	}

	text, ok := music.Notice(ev)
	if !ok || ev.TextChannelID == "" {
		return
	}
	if err := replyTo(b.dg, ev.TextChannelID)(text); err != nil {
		log.Printf("[ERR] Failed to post %s notice to %s: %v", ev.Kind, ev.TextChannelID, err)
	}
}
