package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ChannelKey identifies one data stream by the classic four-component
// seismic code. Components are opaque strings; an empty location code is
// legal and common.
type ChannelKey struct {
	Network  string `json:"network"`
	Station  string `json:"station"`
	Channel  string `json:"channel"`
	Location string `json:"location"`
}

// String renders the key in NET.STA.CHA.LOC form for logs and diagnostics.
func (k ChannelKey) String() string {
	return k.Network + "." + k.Station + "." + k.Channel + "." + k.Location
}

// ParseChannelKeys decodes a JSON array of stream tuples, each an array of
// exactly four scalars. Numbers and booleans are coerced to their literal
// string form; composite elements and nulls reject the whole request.
func ParseChannelKeys(data []byte) ([]ChannelKey, error) {
	raw, err := decodeTuples(data)
	if err != nil {
		return nil, fmt.Errorf("invalid streams: %w", ErrInvalidInput)
	}

	keys := make([]ChannelKey, 0, len(raw))
	for _, item := range raw {
		key, err := coerceChannelKey(item)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func coerceChannelKey(item any) (ChannelKey, error) {
	tuple, ok := item.([]any)
	if !ok || len(tuple) != 4 {
		return ChannelKey{}, fmt.Errorf("invalid stream: %s: %w", renderTuple(item), ErrInvalidInput)
	}

	var parts [4]string
	for i, f := range tuple {
		s, err := coerceScalar(f)
		if err != nil {
			return ChannelKey{}, fmt.Errorf("invalid stream: %s: %w", renderTuple(item), ErrInvalidInput)
		}
		parts[i] = s
	}
	return ChannelKey{Network: parts[0], Station: parts[1], Channel: parts[2], Location: parts[3]}, nil
}

// decodeTuples decodes the outer JSON array preserving number literals.
func decodeTuples(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return raw, nil
}

func coerceScalar(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", fmt.Errorf("component is not a scalar")
	}
}

// renderTuple reproduces the offending input fragment for error messages.
func renderTuple(item any) string {
	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("%v", item)
	}
	return string(b)
}
