package audio

import (
	"bytes"
	"sync"
	"testing"
)

func TestCaptureBufferPreservesArrivalOrder(t *testing.T) {
	var buf captureBuffer
	buf.append([]byte{1, 2})
	buf.append([]byte{3, 4})
	buf.append([]byte{5, 6})

	if got := buf.bytes(); got != 6 {
		t.Errorf("bytes() = %d, want 6", got)
	}
	if got := buf.concat(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("concat() = %v, want chunks in arrival order", got)
	}
}

func TestCaptureBufferConcatReturnsCopy(t *testing.T) {
	var buf captureBuffer
	buf.append([]byte{9, 9})

	out := buf.concat()
	out[0] = 0
	if got := buf.concat(); !bytes.Equal(got, []byte{9, 9}) {
		t.Errorf("mutating concat output leaked into buffer: %v", got)
	}
}

func TestCaptureBufferReset(t *testing.T) {
	var buf captureBuffer
	buf.append([]byte{1, 2, 3})
	buf.reset()

	if got := buf.bytes(); got != 0 {
		t.Errorf("bytes() = %d after reset, want 0", got)
	}
	if got := buf.concat(); len(got) != 0 {
		t.Errorf("concat() = %v after reset, want empty", got)
	}
}

func TestCaptureBufferConcurrentAppendAndRead(t *testing.T) {
	var buf captureBuffer
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			buf.append([]byte{byte(i), byte(i >> 8)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = buf.bytes()
			_ = buf.concat()
		}
	}()
	wg.Wait()

	if got := buf.bytes(); got != 2000 {
		t.Errorf("bytes() = %d, want 2000", got)
	}
}
