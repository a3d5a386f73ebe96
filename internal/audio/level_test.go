package audio

import (
	"encoding/binary"
	"testing"
)

func TestChunkLevelSilenceFloor16Bit(t *testing.T) {
	pcm := make([]byte, 3200) // all-zero 16-bit samples
	if got := ChunkLevel(pcm, 2); got != SilenceFloorDB {
		t.Errorf("ChunkLevel(silence) = %v, want exactly %v", got, SilenceFloorDB)
	}
}

func TestChunkLevelSilenceFloor8Bit(t *testing.T) {
	// 8-bit silence is the 128 midpoint, not zero bytes.
	pcm := make([]byte, 1600)
	for i := range pcm {
		pcm[i] = 128
	}
	if got := ChunkLevel(pcm, 1); got != SilenceFloorDB {
		t.Errorf("ChunkLevel(8-bit silence) = %v, want exactly %v", got, SilenceFloorDB)
	}
}

func TestChunkLevelEmptyChunk(t *testing.T) {
	if got := ChunkLevel(nil, 2); got != SilenceFloorDB {
		t.Errorf("ChunkLevel(nil) = %v, want %v", got, SilenceFloorDB)
	}
}

func TestChunkLevelFullScale16Bit(t *testing.T) {
	pcm := make([]byte, 3200)
	for i := 0; i < len(pcm); i += 2 {
		binary.LittleEndian.PutUint16(pcm[i:], uint16(int16(32767)))
	}
	got := ChunkLevel(pcm, 2)
	// RMS of a constant full-scale signal is the peak, so this sits just
	// under 0 dB (32767 vs the 32768 normalization).
	if got > 0 || got < -0.01 {
		t.Errorf("ChunkLevel(full scale) = %v, want ~0 dB", got)
	}
}

func TestChunkLevelFullScale8Bit(t *testing.T) {
	pcm := make([]byte, 1600)
	for i := range pcm {
		pcm[i] = 255 // +127 around the 128 midpoint
	}
	got := ChunkLevel(pcm, 1)
	if got > 0 || got < -0.1 {
		t.Errorf("ChunkLevel(8-bit full scale) = %v, want ~0 dB", got)
	}
}

func TestChunkLevelQuieterIsLower(t *testing.T) {
	loud := make([]byte, 3200)
	quiet := make([]byte, 3200)
	for i := 0; i < 3200; i += 2 {
		binary.LittleEndian.PutUint16(loud[i:], uint16(int16(16000)))
		binary.LittleEndian.PutUint16(quiet[i:], uint16(int16(400)))
	}
	if ChunkLevel(quiet, 2) >= ChunkLevel(loud, 2) {
		t.Errorf("quiet chunk (%v dB) should be below loud chunk (%v dB)",
			ChunkLevel(quiet, 2), ChunkLevel(loud, 2))
	}
}
