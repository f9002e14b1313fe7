package music

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/keshon/jukebox/pkg/cmd"
)

type SkipCommand struct {
	Player Player
}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current track" }
func (c *SkipCommand) Aliases() []string   { return []string{"pular", "next"} }
func (c *SkipCommand) Category() string    { return category }
func (c *SkipCommand) Usage() string       { return "skip" }

func (c *SkipCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	skipped, err := c.Player.Skip(req.GuildID)
	if err != nil {
		return replyErr(req, err)
	}
	return req.Reply(fmt.Sprintf("⏭ Skipped **%s**.", skipped.DisplayTitle()))
}

type StopCommand struct {
	Player Player
}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop, clear the queue and leave" }
func (c *StopCommand) Aliases() []string   { return []string{"parar"} }
func (c *StopCommand) Category() string    { return category }
func (c *StopCommand) Usage() string       { return "stop" }

func (c *StopCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	if err := c.Player.Stop(req.GuildID); err != nil {
		return replyErr(req, err)
	}
	return req.Reply("⏹ Playback stopped and bot disconnected!")
}

type PauseCommand struct {
	Player Player
}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause the current track" }
func (c *PauseCommand) Category() string    { return category }
func (c *PauseCommand) Usage() string       { return "pause" }

func (c *PauseCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	if err := c.Player.Pause(req.GuildID); err != nil {
		return replyErr(req, err)
	}
	return req.Reply("⏸️ Paused!")
}

type ResumeCommand struct {
	Player Player
}

func (c *ResumeCommand) Name() string        { return "resume" }
func (c *ResumeCommand) Description() string { return "Resume the paused track" }
func (c *ResumeCommand) Aliases() []string   { return []string{"continuar"} }
func (c *ResumeCommand) Category() string    { return category }
func (c *ResumeCommand) Usage() string       { return "resume" }

func (c *ResumeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	if err := c.Player.Resume(req.GuildID); err != nil {
		return replyErr(req, err)
	}
	return req.Reply("▶️ Resumed!")
}

type VolumeCommand struct {
	Player Player
}

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Set the playback volume (0-100)" }
func (c *VolumeCommand) Aliases() []string   { return []string{"vol"} }
func (c *VolumeCommand) Category() string    { return category }
func (c *VolumeCommand) Usage() string       { return "volume <0-100>" }

func (c *VolumeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) == 0 {
		return req.Reply("🔊 Please give a volume between 0 and 100.")
	}

	percent, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(inv.Args[0]), "%"))
	if err != nil {
		return req.Reply("🔊 Please give a volume between 0 and 100.")
	}
	if err := c.Player.SetVolume(req.GuildID, percent); err != nil {
		return replyErr(req, err)
	}
	return req.Reply(fmt.Sprintf("🔊 Volume set to %d%%", percent))
}

type ShuffleCommand struct {
	Player Player
}

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the queue" }
func (c *ShuffleCommand) Aliases() []string   { return []string{"embaralhar"} }
func (c *ShuffleCommand) Category() string    { return category }
func (c *ShuffleCommand) Usage() string       { return "shuffle" }

func (c *ShuffleCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	if err := c.Player.Shuffle(req.GuildID); err != nil {
		return replyErr(req, err)
	}
	return req.Reply("🔀 The queue was shuffled!")
}
