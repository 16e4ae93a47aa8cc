package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores a T as a JSON column. The raw bytes are kept so a value read
// from the database writes back unchanged.
type JSON[T any] struct {
	bytes []byte
	value *T
}

func NewJSON[T any](v T) (JSON[T], error) {
	b, err := json.Marshal(v)
	if err != nil {
		return JSON[T]{}, err
	}
	return JSON[T]{bytes: b, value: &v}, nil
}

func (j *JSON[T]) Get() *T {
	return j.value
}

func (j JSON[T]) IsZero() bool {
	return j.bytes == nil
}

func (j *JSON[T]) UnmarshalJSON(b []byte) (err error) {
	if b == nil {
		j.bytes, j.value = nil, nil
		return nil
	}

	var v T
	if err = json.Unmarshal(b, &v); err != nil {
		j.bytes, j.value = nil, nil
	} else {
		var dst = make([]byte, len(b))
		_ = copy(dst, b)
		j.bytes, j.value = dst, &v
	}

	return
}

func (j JSON[T]) MarshalJSON() ([]byte, error) {
	if j.bytes == nil {
		return []byte("null"), nil
	}
	return j.bytes, nil
}

func (j *JSON[T]) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		j.bytes, j.value = nil, nil
		return nil
	case []byte:
		return j.UnmarshalJSON(v)
	case string:
		return j.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("types: cannot scan %T into JSON", value)
}

func (j JSON[T]) Value() (driver.Value, error) {
	if j.bytes == nil {
		return nil, nil
	}
	return string(j.bytes), nil
}
