package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/phrazzld/neet-pulse/internal/domain"
)

// encodeRecords serialises the collection as a JSON array. A nil slice is
// written as [] so the stored value is always an array.
func encodeRecords(records []domain.TestRecord) (string, error) {
	if records == nil {
		records = []domain.TestRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}
	return string(data), nil
}

// decodeRecords parses a stored collection. Unknown fields, trailing data
// and any record failing validation reject the whole value.
func decodeRecords(raw string) ([]domain.TestRecord, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var records []domain.TestRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode records: trailing data after array")
	}
	if records == nil {
		return nil, fmt.Errorf("failed to decode records: value is not an array")
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}
