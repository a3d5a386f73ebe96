package audio

import (
	"encoding/binary"
	"math"
)

// SilenceFloorDB is reported for chunks with zero RMS, where the logarithm is
// undefined. UI meters treat it as absolute silence.
const SilenceFloorDB = -100.0

// ChunkLevel converts one raw PCM chunk into a single dB measurement.
//
// The RMS amplitude is normalized by the maximum magnitude of the sample
// format: 8-bit audio is unsigned and centered at 128, 16-bit audio is signed
// little-endian with a full scale of 32768.
func ChunkLevel(pcm []byte, sampleWidth int) float64 {
	var sum float64
	var count int
	var maxVal float64

	switch sampleWidth {
	case 1:
		maxVal = 128
		for _, b := range pcm {
			d := float64(b) - 128
			sum += d * d
			count++
		}
	default:
		maxVal = 32768
		for i := 0; i+1 < len(pcm); i += 2 {
			d := float64(int16(binary.LittleEndian.Uint16(pcm[i:])))
			sum += d * d
			count++
		}
	}

	if count == 0 {
		return SilenceFloorDB
	}
	rms := math.Sqrt(sum / float64(count))
	if rms == 0 {
		return SilenceFloorDB
	}
	return 20 * math.Log10(rms/maxVal)
}
