package service

import (
	"testing"

	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNilAsEmptyArray(t *testing.T) {
	t.Parallel()
	raw, err := encodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecodeEmptyArray(t *testing.T) {
	t.Parallel()
	records, err := decodeRecords("[]")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDecodeRejectsUnknownNestedField(t *testing.T) {
	t.Parallel()
	_, err := decodeRecords(`[{"schemaVersion":1,"id":"a","date":"2024-01-01","testName":"x","scores":{"physics":1,"chemistry":1,"biology":1,"maths":4},"total":3}]`)
	assert.Error(t, err)
}

func TestDecodeReportsInvalidRecord(t *testing.T) {
	t.Parallel()
	_, err := decodeRecords(`[{"schemaVersion":2,"id":"a","date":"2024-01-01","testName":"x","scores":{"physics":1,"chemistry":1,"biology":1},"total":3}]`)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSchema)
	assert.ErrorContains(t, err, "record 0")
}
