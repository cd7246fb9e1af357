// Package envelope seals baked payloads into a self-describing binary
// container and validates them on open.
//
// Every buffer produced by the offline generation step is wrapped in a
// fixed 16-byte header followed by the (optionally compressed) payload:
//
//	Magic:       uint16  0xED10, always little-endian
//	Flag:        uint8   bit 0 endianness (0 = little), bits 1-3 compression
//	PayloadType: uint8   what the payload is (eras, parents, week data)
//	PayloadSize: uint32  uncompressed payload size in bytes
//	Checksum:    uint64  xxHash64 of the uncompressed payload
//
// Open validates everything once — magic, flags, payload type, size, and
// checksum — so the structures layered on top can trust the payload without
// re-checking. With CompressionNone the returned payload aliases the sealed
// buffer (zero copy); compressed payloads are decompressed once at open.
package envelope

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/zerodex/compress"
	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/format"
)

const (
	// MagicNumber identifies a sealed zerodex buffer.
	MagicNumber uint16 = 0xED10

	// HeaderSize is the fixed size of the envelope header in bytes.
	HeaderSize = 16

	flagBigEndian      = 0x01
	flagCompressionPos = 1
	flagCompressionBit = 0x0E
)

// options holds the Seal configuration.
type options struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option configures Seal.
type Option func(*options)

// WithCompression sets the payload compression type. The default is
// CompressionNone, which keeps the opened payload zero-copy.
func WithCompression(compression format.CompressionType) Option {
	return func(o *options) {
		o.compression = compression
	}
}

// WithBigEndian seals the payload in big-endian byte order. The default is
// little-endian, the canonical order for baked buffers.
func WithBigEndian() Option {
	return func(o *options) {
		o.bigEndian = true
	}
}

// EngineOf returns the endian engine Seal will record for the given options.
// Builders use it to encode payload contents in the same byte order the
// envelope declares.
func EngineOf(opts ...Option) endian.EndianEngine {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Seal wraps payload in an envelope of the given payload type.
//
// Used only by the offline generation step; the runtime consumes sealed
// buffers through Open.
func Seal(payloadType format.PayloadType, payload []byte, opts ...Option) ([]byte, error) {
	cfg := options{compression: format.CompressionNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	flag := byte(cfg.compression) << flagCompressionPos
	if cfg.bigEndian {
		engine = endian.GetBigEndianEngine()
		flag |= flagBigEndian
	}

	buf := make([]byte, 0, HeaderSize+len(compressed))
	// Magic is little-endian regardless of the flag byte, so Open can read
	// it before the endianness is known.
	buf = append(buf, byte(MagicNumber&0xFF), byte(MagicNumber>>8))
	buf = append(buf, flag, byte(payloadType))
	buf = engine.AppendUint32(buf, uint32(len(payload))) //nolint: gosec
	buf = engine.AppendUint64(buf, xxhash.Sum64(payload))
	buf = append(buf, compressed...)

	return buf, nil
}

// Open validates a sealed buffer and returns its payload along with the
// endian engine its contents are encoded with.
//
// All structural validation of the envelope happens here, once. The caller
// must not use the payload if an error is returned. The returned payload
// aliases buf when the envelope is uncompressed.
func Open(buf []byte, want format.PayloadType) ([]byte, endian.EndianEngine, error) {
	if len(buf) < HeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrBufferTooSmall, len(buf), HeaderSize)
	}

	magic := uint16(buf[0]) | uint16(buf[1])<<8
	if magic != MagicNumber {
		return nil, nil, fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, magic)
	}

	flag := buf[2]
	compression := format.CompressionType((flag & flagCompressionBit) >> flagCompressionPos)
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInvalidHeaderFlags, err)
	}

	payloadType := format.PayloadType(buf[3])
	if payloadType != want {
		return nil, nil, fmt.Errorf("%w: got %s, want %s", errs.ErrInvalidPayloadType, payloadType, want)
	}

	engine := endian.GetLittleEndianEngine()
	if flag&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	size := engine.Uint32(buf[4:8])
	checksum := engine.Uint64(buf[8:16])

	payload, err := codec.Decompress(buf[HeaderSize:])
	if err != nil {
		return nil, nil, fmt.Errorf("decompress payload: %w", err)
	}
	if uint32(len(payload)) != size { //nolint: gosec
		return nil, nil, fmt.Errorf("%w: %d bytes, header declares %d", errs.ErrInvalidPayloadSize, len(payload), size)
	}
	if xxhash.Sum64(payload) != checksum {
		return nil, nil, fmt.Errorf("%w", errs.ErrChecksumMismatch)
	}

	return payload, engine, nil
}
