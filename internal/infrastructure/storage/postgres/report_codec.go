package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionAlgo names the compression applied to a stored report.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// defaultCompressThreshold is the serialized size above which reports are
// stored compressed. Small reports stay queryable as plain jsonb.
const defaultCompressThreshold = 10 * 1024

// reportCodec decides between plain-jsonb and zstd-compressed storage for
// run reports. The encoder and decoder are concurrency safe via
// EncodeAll/DecodeAll.
type reportCodec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

func newReportCodec(threshold int) (*reportCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &reportCodec{encoder: encoder, decoder: decoder, threshold: threshold}, nil
}

// encode serializes the report and compresses it when it exceeds the
// threshold. Exactly one of raw and compressed is non-nil.
func (c *reportCodec) encode(report any) (raw []byte, compressed []byte, algo CompressionAlgo, err error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, nil, CompressionNone, fmt.Errorf("marshal report: %w", err)
	}
	if len(data) <= c.threshold {
		return data, nil, CompressionNone, nil
	}
	return nil, c.encoder.EncodeAll(data, nil), CompressionZstd, nil
}

// decode returns the plain JSON report regardless of how it was stored.
func (c *reportCodec) decode(raw []byte, compressed []byte, algo CompressionAlgo) ([]byte, error) {
	switch algo {
	case CompressionZstd:
		data, err := c.decoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress report: %w", err)
		}
		return data, nil
	case CompressionNone, "":
		return raw, nil
	}
	return nil, fmt.Errorf("unknown compression algo %q", algo)
}
