package ebiten

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const audioSampleRate = 48000

// pcmQueue is an io.Reader that serves queued 16-bit stereo PCM samples to
// an ebiten audio.Player, padding with silence when the emulator hasn't
// produced enough samples to keep up with the audio callback.
type pcmQueue struct {
	mu  sync.Mutex
	buf []byte
}

func (q *pcmQueue) push(samples []int16) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, s := range samples {
		q.buf = binary.LittleEndian.AppendUint16(q.buf, uint16(s))
	}
}

func (q *pcmQueue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := copy(p, q.buf)
	q.buf = q.buf[n:]
	for i := n; i < len(p); i++ {
		p[i] = 0 // silence once the queue runs dry
	}
	return len(p), nil
}

// AudioPlayer streams the emulator's generated PCM samples through
// ebiten/v2/audio (backed by ebitengine/oto/v3).
type AudioPlayer struct {
	ctx    *audio.Context
	player *audio.Player
	queue  *pcmQueue
	muted  bool
}

// NewAudioPlayer creates and starts an audio player. mute starts the
// player with output silenced without stopping sample generation.
func NewAudioPlayer(mute bool) (*AudioPlayer, error) {
	ctx := audio.NewContext(audioSampleRate)
	queue := &pcmQueue{}

	player, err := ctx.NewPlayer(queue)
	if err != nil {
		return nil, err
	}
	player.SetBufferSize(0 * time.Millisecond) // use ebiten's default buffering

	ap := &AudioPlayer{ctx: ctx, player: player, queue: queue, muted: mute}
	ap.SetMuted(mute)
	player.Play()
	return ap, nil
}

// QueueSamples enqueues a frame's worth of interleaved stereo int16 PCM.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if a == nil {
		return
	}
	a.queue.push(samples)
}

// SetMuted toggles output without stopping the underlying player.
func (a *AudioPlayer) SetMuted(muted bool) {
	a.muted = muted
	if muted {
		a.player.SetVolume(0)
	} else {
		a.player.SetVolume(1)
	}
}

// Close stops playback and releases the player.
func (a *AudioPlayer) Close() {
	if a == nil || a.player == nil {
		return
	}
	a.player.Close()
}
