package hetscan_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	line := "chr1\t49272\t.\tG\tA\t148.77\tPASS\t.\tGT:AD:DP:GQ\t1|0:14,7:21:99"

	record, err := ParseRecord(line)
	require.NoError(t, err)

	assert.Equal(t, "chr1", record.Chromosome)
	assert.Equal(t, int64(49272), record.Pos)
	assert.Equal(t, "G", record.Ref)
	assert.Equal(t, "A", record.Alt)
	assert.Equal(t, []string{"GT", "AD", "DP", "GQ"}, record.FormatKeys)
	assert.Equal(t, "1|0:14,7:21:99", record.SampleValue)
}

func TestParseRecordTooFewColumns(t *testing.T) {
	_, err := ParseRecord("chr1\t49272\t.\tG\tA")

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 5, malformed.Columns)
}

func TestParseRecordBadPosition(t *testing.T) {
	line := "chr1\tnotanumber\t.\tG\tA\t148.77\tPASS\t.\tGT:DP:GQ\t1|0:21:99"

	_, err := ParseRecord(line)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
}

// POS is a decimal column, alternate-base notations are malformed
func TestParseRecordRejectsNonDecimalPosition(t *testing.T) {
	line := "chr1\t0x10\t.\tG\tA\t148.77\tPASS\t.\tGT:DP:GQ\t1|0:21:99"

	_, err := ParseRecord(line)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
}

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine("##fileformat=VCFv4.2"))
	assert.True(t, IsHeaderLine("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1"))
	assert.False(t, IsHeaderLine("chr1\t49272\t.\tG\tA\t148.77\tPASS\t.\tGT\t0/1"))
}
