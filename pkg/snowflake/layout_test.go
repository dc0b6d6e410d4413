package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// 2022-01-01 00:00:00 UTC
	id := Encode(1640995200000, 3, 5, 100)

	info := ParseID(id)
	assert.Equal(t, uint64(1640995200000), info.Timestamp)
	assert.Equal(t, uint64(3), info.DatacenterID)
	assert.Equal(t, uint64(5), info.WorkerID)
	assert.Equal(t, uint64(100), info.Sequence)
	assert.Equal(t, id, info.ID)
}

func TestEncodeDecodeBoundaries(t *testing.T) {
	cases := []struct {
		name                                     string
		timestamp, datacenterID, workerID, seq   uint64
	}{
		{"epoch-zero", Epoch, 0, 0, 0},
		{"all-max", Epoch + (1<<41 - 1), MaxDatacenterID, MaxWorkerID, SequenceMask},
		{"seq-max", Epoch + 12345, 0, 31, 4095},
		{"dc-only", Epoch + 1, 31, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := Encode(tc.timestamp, tc.datacenterID, tc.workerID, tc.seq)
			assert.Equal(t, tc.timestamp, ExtractTimestamp(id))
			assert.Equal(t, tc.datacenterID, ExtractDatacenterID(id))
			assert.Equal(t, tc.workerID, ExtractWorkerID(id))
			assert.Equal(t, tc.seq, ExtractSequence(id))
		})
	}
}

func TestValidateIdentity(t *testing.T) {
	assert.NoError(t, ValidateIdentity(31, 31))
	assert.NoError(t, ValidateIdentity(0, 0))

	err := ValidateIdentity(32, 31)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityOutOfRange)

	err = ValidateIdentity(31, 32)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityOutOfRange)
}

func TestParseIDRendering(t *testing.T) {
	id := Encode(1640995200000, 3, 5, 100)
	info := ParseID(id)

	assert.Len(t, info.Binary(), 64)
	assert.Contains(t, info.Hex(), "0x")
	assert.Equal(t, "2022-01-01T00:00:00.000Z", info.TimeString())
	assert.Contains(t, info.Details(), "Worker ID: 5")
	assert.Contains(t, info.Details(), "Sequence: 100")
}
