package main

import (
	"context"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/internal/config"
	"github.com/keshon/jukebox/internal/console"
	"github.com/keshon/jukebox/internal/logging"
	"github.com/keshon/jukebox/internal/middleware"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/source_resolver"
	"github.com/keshon/jukebox/internal/music/speaker"
	"github.com/keshon/jukebox/internal/music/stream"
	"github.com/keshon/jukebox/internal/storage"
	"github.com/keshon/jukebox/pkg/cmd"
)

func playConsoleCmd() *cobra.Command {
	var (
		prefix  string
		history bool
	)

	c := &cobra.Command{
		Use:   "play-console",
		Short: "Run the music commands from stdin, playing to the local speaker",
		Long: `Run the music commands from stdin, playing to the local speaker.

Every line is one command, with or without the prefix:
  play never gonna give you up
  !queue
  quit`,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			logFile := logging.Setup(cfg.LogFile)
			defer logFile.Close()

			if prefix == "" {
				prefix = cfg.CommandPrefix
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			players := player.NewRegistry(speaker.New(stream.NewOpener(cfg.YouTubeProxy)), cfg.PlayerOptions())
			defer players.Close()

			mws := []cmd.Middleware{middleware.WithRecover()}
			if history {
				store, err := storage.New(cfg.StoragePath)
				if err != nil {
					return err
				}
				defer store.Close()
				mws = append([]cmd.Middleware{middleware.WithCommandLogger(store, nil)}, mws...)
			}

			commands := cmd.NewRegistry()
			music.Register(commands, players, source_resolver.New(cfg.SearchRate), mws...)

			con := &console.Console{
				Commands: commands,
				Prefix:   prefix,
				Username: currentUser(),
				Out:      c.OutOrStdout(),
			}
			go con.Relay(ctx, players.Events())
			return con.Run(ctx, c.InOrStdin())
		},
	}

	c.Flags().StringVarP(&prefix, "prefix", "p", "", "command prefix (defaults to COMMAND_PREFIX)")
	c.Flags().BoolVar(&history, "history", false, "record commands in the storage file")
	return c
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
