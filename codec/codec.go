// Package codec is the serialization bridge between domain records and cache
// payloads. Records are encoded as flat JSON objects (decimals as plain
// numbers, timestamps as RFC 3339 strings) and decoded strictly: a payload
// carrying a key the target record does not accept fails the whole decode
// with a shape-mismatch error, so a cached record can never silently acquire
// stray attributes.
package codec

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-crm-store/apperror"
)

func init() {
	// Cache payloads carry monetary fields as plain numbers, not quoted
	// strings. Two-decimal values survive the float round trip exactly.
	decimal.MarshalJSONWithoutQuotes = true
}

// Encode serializes a record to its cache payload.
func Encode[T any](record T) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", apperror.ShapeMismatch(err, "encoding record")
	}
	return string(data), nil
}

// Decode reconstructs a record from a cache payload. Unknown keys fail the
// whole decode; there is no partial reconstruction.
func Decode[T any](payload string) (T, error) {
	var record T
	if err := strictUnmarshal(payload, &record); err != nil {
		return record, err
	}
	return record, nil
}

// EncodeList serializes a collection to a single cache payload.
func EncodeList[T any](records []T) (string, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", apperror.ShapeMismatch(err, "encoding record list")
	}
	return string(data), nil
}

// DecodeList reconstructs a collection from a cache payload with the same
// strictness as Decode.
func DecodeList[T any](payload string) ([]T, error) {
	records := []T{}
	if err := strictUnmarshal(payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ToMapping converts a record to its flat field-name to primitive-value form.
// The mapping is what partial updates and cache payloads are built from.
func ToMapping[T any](record T) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, apperror.ShapeMismatch(err, "mapping record")
	}
	mapping := map[string]any{}
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, apperror.ShapeMismatch(err, "mapping record")
	}
	return mapping, nil
}

// FromMapping reconstructs a record from a flat mapping, keyword-matching
// mapping keys to the record's fields. A key the record does not accept fails
// the whole reconstruction.
func FromMapping[T any](mapping map[string]any) (T, error) {
	var record T
	data, err := json.Marshal(mapping)
	if err != nil {
		return record, apperror.ShapeMismatch(err, "reconstructing record")
	}
	if err := strictUnmarshal(string(data), &record); err != nil {
		return record, err
	}
	return record, nil
}

func strictUnmarshal(payload string, dest any) error {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return apperror.ShapeMismatch(err, "decoding payload")
	}
	// Trailing garbage after the first JSON value is drift too.
	var rest bytes.Buffer
	if _, err := rest.ReadFrom(dec.Buffered()); err == nil {
		if strings.TrimSpace(rest.String()) != "" {
			return apperror.ShapeMismatch(nil, "payload has trailing data")
		}
	}
	return nil
}
