package audio

import "sync"

// captureBuffer is the append-only chunk sequence behind a recording attempt.
// It is the only state shared between the delivery path and the control
// operations, so every access goes through its mutex. The raw chunk slices are
// never handed out; concat returns a fresh copy.
type captureBuffer struct {
	mu     sync.Mutex
	chunks [][]byte
	size   int
}

// append adds one chunk. The caller must pass an owned copy.
func (b *captureBuffer) append(chunk []byte) {
	b.mu.Lock()
	b.chunks = append(b.chunks, chunk)
	b.size += len(chunk)
	b.mu.Unlock()
}

// bytes returns the total buffered byte count.
func (b *captureBuffer) bytes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// concat returns all buffered audio as one contiguous copy, in arrival order.
func (b *captureBuffer) concat() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, 0, b.size)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return out
}

// reset discards all buffered audio.
func (b *captureBuffer) reset() {
	b.mu.Lock()
	b.chunks = nil
	b.size = 0
	b.mu.Unlock()
}
