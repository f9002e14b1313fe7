package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/keshon/jukebox/internal/music/parsers"
	"github.com/lrstanley/go-ytdlp"
)

// YTDLPStreamer extracts media with yt-dlp. Link mode asks yt-dlp for the
// audio url and lets ffmpeg fetch it, pipe mode lets yt-dlp download and
// feeds ffmpeg through stdin.
type YTDLPStreamer struct {
	proxy string
	pipe  bool
}

func New(proxy string, pipe bool) *YTDLPStreamer {
	return &YTDLPStreamer{proxy: proxy, pipe: pipe}
}

func (s *YTDLPStreamer) Name() string {
	if s.pipe {
		return "ytdlp-pipe"
	}
	return "ytdlp-link"
}

func (s *YTDLPStreamer) Open(ctx context.Context, url string, seekSec float64) (io.ReadCloser, error) {
	if s.pipe {
		return s.openPipe(ctx, url, seekSec)
	}
	return s.openLink(ctx, url, seekSec)
}

func (s *YTDLPStreamer) command() *ytdlp.Command {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreConfig().
		NoPlaylist().
		Format("bestaudio[ext=webm]/bestaudio")
	if s.proxy != "" {
		cmd.Proxy(s.proxy)
	}
	return cmd
}

func (s *YTDLPStreamer) openLink(ctx context.Context, url string, seekSec float64) (io.ReadCloser, error) {
	res, err := s.command().Print("%(url)s").Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp get-url error: %w", err)
	}

	link, err := firstLink(res.Stdout)
	if err != nil {
		return nil, err
	}
	return parsers.StartFFmpeg(link, nil, seekSec)
}

func (s *YTDLPStreamer) openPipe(ctx context.Context, url string, seekSec float64) (io.ReadCloser, error) {
	// the download outlives the open call, only ffmpeg's Close ends it
	ytdlpCmd := s.command().
		Output("-").
		NoPart().
		BuildCommand(context.WithoutCancel(ctx), url)

	ffmpegIn, err := ytdlpCmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp stdout pipe error: %w", err)
	}
	if err := ytdlpCmd.Start(); err != nil {
		return nil, fmt.Errorf("yt-dlp start error: %w", err)
	}

	stream, err := parsers.StartFFmpeg("pipe:0", ffmpegIn, seekSec, ytdlpCmd)
	if err != nil {
		_ = ytdlpCmd.Process.Kill()
		_ = ytdlpCmd.Wait()
		return nil, err
	}
	return stream, nil
}

func firstLink(stdout string) (string, error) {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line, nil
		}
	}
	return "", errors.New("empty URL returned from yt-dlp")
}
