package discord

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/internal/config"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/storage"
	"github.com/keshon/jukebox/pkg/cmd"
)

// commandTimeout bounds one command run, voice join included.
const commandTimeout = 30 * time.Second

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	storage  *storage.Storage
	commands *cmd.Registry
	players  *player.Registry
	ctx      context.Context
}

// NewSession creates the Discord session with the intents the bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
	return dg, nil
}

func New(dg *discordgo.Session, cfg *config.Config, store *storage.Storage, commands *cmd.Registry, players *player.Registry) *Bot {
	return &Bot{
		dg:       dg,
		cfg:      cfg,
		storage:  store,
		commands: commands,
		players:  players,
		ctx:      context.Background(),
	}
}

// Names resolves guild and channel names for the command history.
func (b *Bot) Names(guildID, channelID string) (string, string) {
	return Names(b.dg, guildID, channelID)
}

// Run opens the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	go b.relayEvents(ctx)

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.players.Close()
	return nil
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		b.leaveIfBlacklisted(s, g.ID, g.Name)
	}
	log.Printf("[INFO] ✅ Discord bot %v is running with prefix %q.", r.User.Username, b.cfg.CommandPrefix)
}

// onGuildCreate is called when a guild is created
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	b.leaveIfBlacklisted(s, g.Guild.ID, g.Guild.Name)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID, name string) {
	if !slices.Contains(b.cfg.DiscordGuildBlacklist, guildID) {
		return
	}
	log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", guildID, name)
	if err := s.GuildLeave(guildID); err != nil {
		log.Printf("[ERR] Failed to leave guild %s: %v", guildID, err)
	}
}

// onMessageCreate dispatches prefixed text commands
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	name, args, ok := ParseCommand(m.Content, b.cfg.CommandPrefix)
	if !ok {
		return
	}
	c := b.commands.Get(name)
	if c == nil {
		return
	}

	req := &music.Request{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		Reply:     replyTo(s, m.ChannelID),
	}
	if m.GuildID != "" {
		if vs, err := FindUserVoiceState(s, m.GuildID, m.Author.ID); err == nil {
			req.VoiceChannelID = vs.ChannelID
		}
	}

	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	if err := c.Run(ctx, &cmd.Invocation{Args: args, Data: req}); err != nil {
		log.Printf("[ERR] Error running command %s: %v", c.Name(), err)
		if e := req.Reply(fmt.Sprintf("Error running command: %v", err)); e != nil {
			log.Printf("[ERR] Failed to report command error: %v", e)
		}
	}
}

// ParseCommand splits a prefixed message into a command name and its
// arguments.
func ParseCommand(content, prefix string) (name string, args []string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
