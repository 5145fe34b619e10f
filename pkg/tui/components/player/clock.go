package player

import (
	"bytes"
	"strconv"

	"github.com/bogem/id3v2"

	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/track"
)

// ClockOutput is the terminal host's playback.Output. There is no
// audio device in a terminal, so it models playback as wall-clock
// progress: the UI ticks once per second and Advance moves the
// position, firing the queue's media callbacks the way a real output
// would.
type ClockOutput struct {
	playing bool
	loaded  *track.Track

	// queue is set after construction; ClockOutput and Queue
	// reference each other the way a media element and its
	// controller do.
	queue *playback.Queue
}

// Bind attaches the queue whose callbacks receive media events.
func (c *ClockOutput) Bind(q *playback.Queue) { c.queue = q }

// Playing reports whether the clock is advancing.
func (c *ClockOutput) Playing() bool { return c.playing }

// Load switches the active track and reports its duration from the
// ID3v2 TLEN frame when the file carries one, falling back to a
// bitrate estimate. Mirrors a media element's metadata event.
func (c *ClockOutput) Load(t *track.Track) error {
	c.loaded = t
	if c.queue != nil && t.Duration == 0 {
		if d := probeDuration(t); d > 0 {
			c.queue.OnMetadataLoaded(t.ID, d)
		}
	}
	return nil
}

func (c *ClockOutput) Play() error {
	if c.loaded == nil {
		return nil
	}
	c.playing = true
	return nil
}

func (c *ClockOutput) Pause() { c.playing = false }

// Seek and SetVolume are position/volume sinks; the queue is the
// source of truth for both, so the clock has nothing to store.
func (c *ClockOutput) Seek(float64)      {}
func (c *ClockOutput) SetVolume(float64) {}

// Advance moves playback forward by one tick. Crossing the end of the
// current track fires the ended callback, which advances the queue.
func (c *ClockOutput) Advance() {
	if !c.playing || c.queue == nil {
		return
	}
	cur := c.queue.Current()
	if cur == nil {
		c.playing = false
		return
	}
	pos := c.queue.State().Position + 1
	if cur.Duration > 0 && pos >= cur.Duration {
		c.queue.OnTrackEnded()
		return
	}
	c.queue.OnTimeUpdate(pos)
}

// probeDuration reads the TLEN (milliseconds) text frame, falling
// back to a 128kbps estimate over the payload size.
func probeDuration(t *track.Track) float64 {
	data, err := t.Bytes()
	if err != nil || len(data) == 0 {
		return 0
	}
	if tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true}); err == nil {
		if tlen := tag.GetTextFrame("TLEN"); tlen.Text != "" {
			if ms, err := strconv.ParseFloat(tlen.Text, 64); err == nil && ms > 0 {
				return ms / 1000
			}
		}
	}
	const bitrate = 128_000.0 / 8 // bytes per second at 128kbps
	return float64(len(data)) / bitrate
}
