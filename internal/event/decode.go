package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when an event carries no payload to decode
var ErrNilPayload = errors.New("event payload is nil")

// DecodePayload returns the payload as T. In-process events carry T (or *T) directly;
// dead-lettered events read back from disk carry raw JSON or generic maps, which are
// decoded into T.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, ErrNilPayload
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, ErrNilPayload
		}
		return *v, nil
	case json.RawMessage:
		return result, unmarshalPayload(v, &result)
	case []byte:
		return result, unmarshalPayload(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to encode %T payload: %w", input, err)
	}
	return result, unmarshalPayload(data, &result)
}

func unmarshalPayload(data []byte, dst interface{}) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %T payload: %w", dst, err)
	}
	return nil
}
