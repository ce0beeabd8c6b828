package speech

import (
	"context"
	"fmt"
	"os/exec"
)

// Player воспроизводит синтезированную речь
type Player interface {
	Play(ctx context.Context, clip *AudioClip) error
}

// NopPlayer ничего не воспроизводит; файл остаётся в кэше
type NopPlayer struct{}

// Play implements Player
func (NopPlayer) Play(context.Context, *AudioClip) error { return nil }

// CommandPlayer plays clips with an external program such as mpg123 or
// afplay; the clip path is appended to Args.
type CommandPlayer struct {
	Command string
	Args    []string
}

// Play implements Player
func (p CommandPlayer) Play(ctx context.Context, clip *AudioClip) error {
	args := append(append([]string{}, p.Args...), clip.Path)
	out, err := exec.CommandContext(ctx, p.Command, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", p.Command, err, out)
	}
	return nil
}
