package result

import "encoding/json"

// Envelope is implemented by *Result, *Of[T] and *Grid[T].
type Envelope interface {
	MetadataSource
	Base() *Result
}

var (
	_ Envelope = (*Result)(nil)
	_ Envelope = (*Of[int])(nil)
	_ Envelope = (*Grid[int])(nil)
)

// JSON serializes env for diagnostics. Unless includeException is set
// the "exception" member is dropped; env itself is not modified.
func JSON(env Envelope, includeException bool) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil || includeException {
		return data, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if _, ok := fields["exception"]; !ok {
		return data, nil
	}
	delete(fields, "exception")
	return json.Marshal(fields)
}
