package parsers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"sync"
)

const (
	Channels   = 2
	SampleRate = 48000
	FrameSize  = 960 // 20ms at 48kHz
	FrameBytes = FrameSize * Channels * 2
)

// FFmpegBinary is the decoder executable.
var FFmpegBinary = "ffmpeg"

// FFmpegArgs builds the decoder arguments. Network inputs get reconnect flags.
func FFmpegArgs(input string, seekSec float64, reconnect bool) []string {
	args := make([]string, 0, 20)
	if seekSec > 0 {
		args = append(args, "-ss", strconv.FormatFloat(seekSec, 'f', 3, 64))
	}
	if reconnect {
		args = append(args,
			"-reconnect", "1",
			"-reconnect_streamed", "1",
			"-reconnect_delay_max", "5",
		)
	}
	return append(args,
		"-i", input,
		"-f", "s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"-loglevel", "warning",
		"pipe:1",
	)
}

// StartFFmpeg decodes input (a link, or "pipe:0" with stdin set) and returns
// its PCM output. Upstream commands are killed together with ffmpeg on Close.
func StartFFmpeg(input string, stdin io.ReadCloser, seekSec float64, upstream ...*exec.Cmd) (io.ReadCloser, error) {
	cmd := exec.Command(FFmpegBinary, FFmpegArgs(input, seekSec, stdin == nil)...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	p := &Process{ReadCloser: out, cmds: append([]*exec.Cmd{cmd}, upstream...)}
	if stdin != nil {
		p.closers = append(p.closers, stdin)
	}
	return p, nil
}

// Process is the stdout of a running pipeline.
type Process struct {
	io.ReadCloser
	cmds    []*exec.Cmd
	closers []io.Closer
	once    sync.Once
}

// Close kills the pipeline and reaps it. Wait also closes the stdout pipe.
func (p *Process) Close() error {
	p.once.Do(func() {
		for _, c := range p.cmds {
			_ = c.Process.Kill()
		}
		for _, c := range p.closers {
			_ = c.Close()
		}
		for _, c := range p.cmds {
			if err := c.Wait(); err != nil && !isKilled(err) {
				log.Printf("[Parser] %s exited: %v", c.Path, err)
			}
		}
	})
	return nil
}

func isKilled(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && !exitErr.Exited()
}
