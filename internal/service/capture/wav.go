package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const wavHeaderSize = 44

// ErrInvalidWAV is returned for audio that is not canonical PCM WAV.
var ErrInvalidWAV = errors.New("invalid wav")

// WAVFormat describes PCM audio.
type WAVFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// DefaultWAVFormat is 16kHz 16-bit mono.
func DefaultWAVFormat() WAVFormat {
	return WAVFormat{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
}

// ByteRate returns bytes of PCM per second.
func (f WAVFormat) ByteRate() int {
	return f.SampleRate * f.Channels * f.BitsPerSample / 8
}

// Duration returns the playing time of n bytes of PCM.
func (f WAVFormat) Duration(n int) time.Duration {
	br := f.ByteRate()
	if br <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(br)
}

// EncodeWAV wraps PCM data with a 44-byte WAV header.
func EncodeWAV(pcm []byte, f WAVFormat) []byte {
	blockAlign := f.Channels * f.BitsPerSample / 8

	header := make([]byte, wavHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitsPerSample))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	return append(header, pcm...)
}

// DecodeWAV splits a canonical PCM WAV into its format and sample data.
func DecodeWAV(b []byte) (WAVFormat, []byte, error) {
	if len(b) < wavHeaderSize {
		return WAVFormat{}, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidWAV, len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return WAVFormat{}, nil, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrInvalidWAV)
	}
	if audioFormat := binary.LittleEndian.Uint16(b[20:22]); audioFormat != 1 {
		return WAVFormat{}, nil, fmt.Errorf("%w: only PCM supported, got format %d", ErrInvalidWAV, audioFormat)
	}

	f := WAVFormat{
		Channels:      int(binary.LittleEndian.Uint16(b[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(b[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(b[34:36])),
	}
	if f.ByteRate() <= 0 {
		return WAVFormat{}, nil, fmt.Errorf("%w: zero byte rate", ErrInvalidWAV)
	}

	pcm := b[wavHeaderSize:]
	if size := int(binary.LittleEndian.Uint32(b[40:44])); size < len(pcm) {
		pcm = pcm[:size]
	}
	return f, pcm, nil
}
