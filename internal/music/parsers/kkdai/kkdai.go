package kkdai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/keshon/jukebox/internal/music/parsers"
	youtube "github.com/kkdai/youtube/v2"
)

// KKDAIStreamer resolves YouTube audio in-process. Link mode gives ffmpeg the
// signed media url, pipe mode downloads here and feeds ffmpeg's stdin.
type KKDAIStreamer struct {
	client *youtube.Client
	pipe   bool
}

func New(proxy string, pipe bool) *KKDAIStreamer {
	return &KKDAIStreamer{client: NewClient(proxy), pipe: pipe}
}

func (s *KKDAIStreamer) Name() string {
	if s.pipe {
		return "kkdai-pipe"
	}
	return "kkdai-link"
}

func (s *KKDAIStreamer) Open(ctx context.Context, link string, seekSec float64) (io.ReadCloser, error) {
	videoID, err := extractYouTubeID(link)
	if err != nil {
		return nil, err
	}

	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("[%s] youtube client error: %w", s.Name(), err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, fmt.Errorf("[%s] no audio formats found for video", s.Name())
	}

	if !s.pipe {
		mediaURL, err := s.client.GetStreamURLContext(ctx, video, &formats[0])
		if err != nil {
			return nil, fmt.Errorf("[%s] get stream URL error: %w", s.Name(), err)
		}
		return parsers.StartFFmpeg(mediaURL, nil, seekSec)
	}

	body, _, err := s.client.GetStreamContext(context.WithoutCancel(ctx), video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("[%s] get stream error: %w", s.Name(), err)
	}
	stream, err := parsers.StartFFmpeg("pipe:0", body, seekSec)
	if err != nil {
		body.Close()
		return nil, err
	}
	return stream, nil
}

func extractYouTubeID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}

	var id string
	switch strings.TrimPrefix(u.Hostname(), "www.") {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "m.youtube.com":
		id = u.Query().Get("v")
		if id == "" && strings.HasPrefix(u.Path, "/shorts/") {
			id = strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
		}
	default:
		return "", errors.New("unsupported URL format")
	}

	if id == "" {
		return "", errors.New("invalid YouTube URL format")
	}
	return id, nil
}
