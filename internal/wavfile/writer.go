// Package wavfile serializes finished recordings to WAV containers on disk.
package wavfile

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Extension is the container's standard file extension.
const Extension = ".wav"

// NormalizePath replaces whatever extension the caller supplied with the
// container's own.
func NormalizePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + Extension
}

// Write serializes a contiguous mono PCM sample sequence to path. The sample
// width is in bytes (1 = unsigned 8-bit, 2 = signed 16-bit little-endian).
// On failure no partial file is left behind and the underlying I/O error is
// propagated.
func Write(path string, pcm []byte, sampleRate, sampleWidth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	bitDepth := sampleWidth * 8
	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		Data:           decodeSamples(pcm, sampleWidth),
		SourceBitDepth: bitDepth,
	}
	if err = enc.Write(buf); err != nil {
		return fmt.Errorf("encoding audio data: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// decodeSamples unpacks raw capture bytes into the integer samples the wav
// encoder expects. 8-bit WAV data stays unsigned, 16-bit stays signed.
func decodeSamples(pcm []byte, sampleWidth int) []int {
	if sampleWidth == 1 {
		out := make([]int, len(pcm))
		for i, b := range pcm {
			out[i] = int(b)
		}
		return out
	}
	out := make([]int, len(pcm)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}
	return out
}
