package persistence

import (
	"fmt"
	"tarotstats/internal/persistence/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize bounds what a ledger or snapshot file may expand to.
const maxDecodedSize = 64 << 20

// ZstdCompression is the codec of compressed ledger documents and server
// snapshots. Both are whole JSON documents, so it works on full buffers.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, nil), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

func NewZstdCompressor() (*ZstdCompression, error) {
	return newZstd(maxDecodedSize)
}

func newZstd(maxDecoded uint64) (*ZstdCompression, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(maxDecoded))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// PlainCompression stores bytes as they are.
type PlainCompression struct{}

func (PlainCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (PlainCompression) Decompress(val []byte) ([]byte, error) { return val, nil }

// NewCompressor picks zstd when enabled and the identity codec otherwise.
func NewCompressor(enabled bool) (interfaces.CompressorInterface, error) {
	if !enabled {
		return PlainCompression{}, nil
	}
	z, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	return z, nil
}
