package playback

import "tableflip.dev/tempo/pkg/track"

// Output is the narrow capability the queue drives. The host
// environment implements it and feeds media events back through the
// queue's On* methods. Play may be rejected by the host (for example
// an output device requiring explicit user interaction); the queue
// treats a rejection as a no-op.
type Output interface {
	Load(t *track.Track) error
	Play() error
	Pause()
	Seek(seconds float64)
	SetVolume(v float64)
}

// NopOutput is an Output for contexts with no audio device attached,
// such as the one-shot CLI commands that only mutate persisted state.
type NopOutput struct{}

func (NopOutput) Load(*track.Track) error { return nil }
func (NopOutput) Play() error             { return nil }
func (NopOutput) Pause()                  {}
func (NopOutput) Seek(float64)            {}
func (NopOutput) SetVolume(float64)       {}
