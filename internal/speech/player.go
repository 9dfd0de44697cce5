package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Player plays a synthesized clip and blocks until playback ends
type Player interface {
	Play(ctx context.Context, audio *Audio) error
}

// ExecPlayer plays clips through the first available system audio player
type ExecPlayer struct {
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecPlayer creates a player using the platform audio tools
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{lookPath: exec.LookPath, command: exec.CommandContext}
}

// Play writes the clip to a temporary file and plays it
func (p *ExecPlayer) Play(ctx context.Context, audio *Audio) error {
	if audio == nil || len(audio.Data) == 0 {
		return nil
	}

	f, err := os.CreateTemp("", "persianpro-*."+audio.Format)
	if err != nil {
		return fmt.Errorf("failed to create temporary audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio.Data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temporary audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write temporary audio file: %w", err)
	}

	name, args, err := p.playerCommand(f.Name(), audio.Format)
	if err != nil {
		return err
	}

	if err := p.command(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// playerCommand picks a platform-specific player for file
func (p *ExecPlayer) playerCommand(file, format string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", []string{file}, nil
	case "linux":
		// mpg123 only decodes MP3, so it is skipped for WAV clips
		candidates := []struct {
			name string
			args []string
			mp3  bool
		}{
			{"mpg123", []string{"-q", file}, true},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}, false},
			{"play", []string{"-q", file}, false},
			{"paplay", []string{file}, false},
			{"aplay", []string{"-q", file}, false},
		}
		for _, c := range candidates {
			if c.mp3 && format != "mp3" {
				continue
			}
			if _, err := p.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return "cmd", []string{"/c", "start", "/min", file}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
