package result

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Public is the externally safe projection of a [Result]. It carries no
// status code, exception or metadata and is built only by [ToPublic].
type Public struct {
	Succeeded bool     `json:"succeeded"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// PublicOf is the externally safe projection of an [Of].
type PublicOf[T any] struct {
	Public
	Data T `json:"data,omitempty"`
}

// ToPublic projects r. A nil r yields a failed projection with no
// message. Blank messages become "" and blank error entries are
// dropped; Errors is nil when nothing remains.
func ToPublic(r *Result) *Public {
	if r == nil {
		return &Public{}
	}
	return &Public{
		Succeeded: r.Succeeded,
		Message:   publicMessage(r.Message),
		Errors:    publicErrors(r.errors),
	}
}

// ToPublicOf projects r, including Data.
func ToPublicOf[T any](r *Of[T]) *PublicOf[T] {
	if r == nil {
		return &PublicOf[T]{}
	}
	return &PublicOf[T]{Public: *ToPublic(&r.Result), Data: r.Data}
}

func publicMessage(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return ""
	}
	return msg
}

func publicErrors(errs []ResultError) []string {
	var out []string
	for _, e := range errs {
		if strings.TrimSpace(e.msg) != "" {
			out = append(out, e.msg)
		}
	}
	return out
}

type publicOfJSON struct {
	Public
	Data any `json:"data,omitempty"`
}

// MarshalJSON omits data only when it is nil; an empty slice is
// written as [].
func (p PublicOf[T]) MarshalJSON() ([]byte, error) {
	w := publicOfJSON{Public: p.Public}
	if !isNil(p.Data) {
		w.Data = p.Data
	}
	return json.Marshal(w)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
