package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/pkg/cmd"
)

const category = "🎵 Music"

// Request is what the adapter puts in cmd.Invocation.Data for music commands.
type Request struct {
	GuildID        string
	ChannelID      string
	UserID         string
	Username       string
	VoiceChannelID string
	Reply          func(text string) error
}

// Player is the registry surface the commands drive.
type Player interface {
	Enqueue(ctx context.Context, req player.EnqueueRequest) (player.EnqueueResult, error)
	Skip(guildID string) (player.Track, error)
	Stop(guildID string) error
	Pause(guildID string) error
	Resume(guildID string) error
	SetVolume(guildID string, percent int) error
	Shuffle(guildID string) error
	List(guildID string) player.Listing
	NowPlaying(guildID string) (player.Track, bool)
}

// Register adds the music commands to reg.
func Register(reg *cmd.Registry, p Player, resolver player.Resolver, mws ...cmd.Middleware) {
	for _, c := range Commands(p, resolver, reg) {
		reg.Register(cmd.Apply(c, mws...))
	}
}

// Commands returns the music command set. help lists what reg holds.
func Commands(p Player, resolver player.Resolver, reg *cmd.Registry) []cmd.Command {
	return []cmd.Command{
		&PlayCommand{Player: p, Resolver: resolver},
		&SkipCommand{Player: p},
		&StopCommand{Player: p},
		&QueueCommand{Player: p},
		&PauseCommand{Player: p},
		&ResumeCommand{Player: p},
		&VolumeCommand{Player: p},
		&ShuffleCommand{Player: p},
		&HelpCommand{Registry: reg},
	}
}

func request(inv *cmd.Invocation) (*Request, error) {
	req, ok := inv.Data.(*Request)
	if !ok || req == nil {
		return nil, fmt.Errorf("music command invoked without a request, got %T", inv.Data)
	}
	return req, nil
}

// replyErr turns a player error into a chat reply. Unknown errors are
// returned to the caller.
func replyErr(req *Request, err error) error {
	var msg string
	switch {
	case errors.Is(err, player.ErrNoActiveSession):
		msg = "🎵 Nothing is playing right now."
	case errors.Is(err, player.ErrTransportJoin):
		msg = "⚠️ Could not connect to the voice channel."
	case errors.Is(err, player.ErrTrackNotFound):
		msg = "🔍 Could not find that track."
	case errors.Is(err, player.ErrInvalidVolume):
		msg = "🔊 Please give a volume between 0 and 100."
	case errors.Is(err, player.ErrInsufficientTracks):
		msg = "🔀 Not enough tracks in the queue to shuffle."
	case errors.Is(err, player.ErrStreamUnavailable):
		msg = "⚠️ That track could not be streamed."
	default:
		return err
	}
	return req.Reply(msg)
}
