package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// format describes PCM audio parameters.
type format struct {
	sampleRate int
	channels   int
	bitDepth   int
}

// decodeWAV walks the RIFF chunks of a WAV file and returns the raw
// PCM payload plus its format. Only 16-bit PCM is accepted -- that is
// what the player's oto context is configured for.
func decodeWAV(wav []byte) ([]byte, format, error) {
	if len(wav) < 12 {
		return nil, format{}, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, format{}, errors.New("not a valid WAV file")
	}

	var f format
	var pcm []byte
	sawFmt := false

	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := pos + 8

		switch chunkID {
		case "fmt ":
			if body+16 > len(wav) {
				return nil, format{}, errors.New("truncated fmt chunk")
			}
			f.channels = int(binary.LittleEndian.Uint16(wav[body+2 : body+4]))
			f.sampleRate = int(binary.LittleEndian.Uint32(wav[body+4 : body+8]))
			f.bitDepth = int(binary.LittleEndian.Uint16(wav[body+14 : body+16]))
			sawFmt = true
		case "data":
			end := body + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			pcm = wav[body:end]
		}

		pos = body + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	if !sawFmt {
		return nil, format{}, errors.New("fmt chunk not found in WAV")
	}
	if pcm == nil {
		return nil, format{}, errors.New("data chunk not found in WAV")
	}
	if f.bitDepth != 16 {
		return nil, format{}, fmt.Errorf("unsupported bit depth %d (want 16-bit PCM)", f.bitDepth)
	}
	if f.channels < 1 || f.sampleRate <= 0 {
		return nil, format{}, fmt.Errorf("invalid WAV format (rate=%d, channels=%d)", f.sampleRate, f.channels)
	}
	return pcm, f, nil
}
