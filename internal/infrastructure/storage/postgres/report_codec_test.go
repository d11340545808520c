package postgres

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabularium/internal/domain/importer"
	"tabularium/internal/domain/schema"
)

func TestReportCodecSmallReportStaysPlain(t *testing.T) {
	codec, err := newReportCodec(defaultCompressThreshold)
	require.NoError(t, err)

	report := &importer.Report{TableID: "items", TotalRows: 1, ValidRows: 1}
	raw, compressed, algo, err := codec.encode(report)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, algo)
	assert.Nil(t, compressed)
	assert.NotEmpty(t, raw)

	back, err := codec.decode(raw, compressed, algo)
	require.NoError(t, err)

	var decoded importer.Report
	require.NoError(t, json.Unmarshal(back, &decoded))
	assert.Equal(t, "items", decoded.TableID)
}

func TestReportCodecCompressesLargeReports(t *testing.T) {
	codec, err := newReportCodec(512)
	require.NoError(t, err)

	report := &importer.Report{TableID: "items"}
	for i := 0; i < 100; i++ {
		report.Rows = append(report.Rows, importer.RowResult{
			Index: i,
			Issues: []importer.CellIssue{{
				Row:      i,
				ColumnID: "unit_price",
				Header:   "Price",
				Raw:      strings.Repeat("x", 40),
				Failure:  schema.Failure{Code: schema.FailTypeMismatch, Message: "bad price"},
			}},
		})
	}
	report.TotalRows = len(report.Rows)
	report.FailedRows = len(report.Rows)

	raw, compressed, algo, err := codec.encode(report)
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, algo)
	assert.Nil(t, raw)
	assert.NotEmpty(t, compressed)

	back, err := codec.decode(raw, compressed, algo)
	require.NoError(t, err)

	var decoded importer.Report
	require.NoError(t, json.Unmarshal(back, &decoded))
	assert.Equal(t, report.TotalRows, decoded.TotalRows)
	assert.Len(t, decoded.Rows, 100)
	assert.Equal(t, schema.FailTypeMismatch, decoded.Rows[42].Issues[0].Failure.Code)
}

func TestReportCodecRejectsUnknownAlgo(t *testing.T) {
	codec, err := newReportCodec(defaultCompressThreshold)
	require.NoError(t, err)

	_, err = codec.decode(nil, []byte{1, 2, 3}, "lz77")
	assert.Error(t, err)
}
