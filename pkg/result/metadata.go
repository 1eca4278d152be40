package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Kind identifies the variant held by a [MetaValue].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindDuration
	KindOther
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "time", "duration", "other"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MetaValue is a metadata entry: the value as written plus its variant.
// Scalars are normalized (all signed and unsigned integers to int64,
// both float widths to float64) so the As* accessors are exact per kind.
type MetaValue struct {
	kind Kind
	raw  any
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	d    time.Duration
}

// ValueOf classifies v. Unsigned values that overflow int64 and any
// non-scalar type are stored as [KindOther].
func ValueOf(v any) MetaValue {
	mv := MetaValue{raw: v}
	switch x := v.(type) {
	case nil:
		mv.kind = KindNull
	case MetaValue:
		return x
	case bool:
		mv.kind, mv.b = KindBool, x
	case int:
		mv.kind, mv.i = KindInt, int64(x)
	case int8:
		mv.kind, mv.i = KindInt, int64(x)
	case int16:
		mv.kind, mv.i = KindInt, int64(x)
	case int32:
		mv.kind, mv.i = KindInt, int64(x)
	case int64:
		mv.kind, mv.i = KindInt, x
	case uint8:
		mv.kind, mv.i = KindInt, int64(x)
	case uint16:
		mv.kind, mv.i = KindInt, int64(x)
	case uint32:
		mv.kind, mv.i = KindInt, int64(x)
	case uint:
		mv.setUnsigned(uint64(x))
	case uint64:
		mv.setUnsigned(x)
	case float32:
		mv.kind, mv.f = KindFloat, float64(x)
	case float64:
		mv.kind, mv.f = KindFloat, x
	case string:
		mv.kind, mv.s = KindString, x
	case time.Time:
		mv.kind, mv.t = KindTime, x
	case time.Duration:
		mv.kind, mv.d = KindDuration, x
	default:
		mv.kind = KindOther
	}
	return mv
}

func (m *MetaValue) setUnsigned(u uint64) {
	if u > math.MaxInt64 {
		m.kind = KindOther
		return
	}
	m.kind, m.i = KindInt, int64(u)
}

// Kind returns the variant.
func (m MetaValue) Kind() Kind { return m.kind }

// Raw returns the value exactly as written.
func (m MetaValue) Raw() any { return m.raw }

// IsNull reports whether the stored value is nil.
func (m MetaValue) IsNull() bool { return m.kind == KindNull }

// AsBool returns the value if the kind is KindBool.
func (m MetaValue) AsBool() (bool, bool) { return m.b, m.kind == KindBool }

// AsInt returns the value if the kind is KindInt.
func (m MetaValue) AsInt() (int64, bool) { return m.i, m.kind == KindInt }

// AsFloat returns the value if the kind is KindFloat.
func (m MetaValue) AsFloat() (float64, bool) { return m.f, m.kind == KindFloat }

// AsString returns the value if the kind is KindString.
func (m MetaValue) AsString() (string, bool) { return m.s, m.kind == KindString }

// AsTime returns the value if the kind is KindTime.
func (m MetaValue) AsTime() (time.Time, bool) { return m.t, m.kind == KindTime }

// AsDuration returns the value if the kind is KindDuration.
func (m MetaValue) AsDuration() (time.Duration, bool) { return m.d, m.kind == KindDuration }

// Equal reports whether both values have the same kind and payload.
func (m MetaValue) Equal(o MetaValue) bool {
	if m.kind != o.kind {
		return false
	}
	switch m.kind {
	case KindNull:
		return true
	case KindBool:
		return m.b == o.b
	case KindInt:
		return m.i == o.i
	case KindFloat:
		return m.f == o.f
	case KindString:
		return m.s == o.s
	case KindTime:
		return m.t.Equal(o.t)
	case KindDuration:
		return m.d == o.d
	default:
		return fmt.Sprint(m.raw) == fmt.Sprint(o.raw)
	}
}

// MarshalJSON writes the raw value.
func (m MetaValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.raw)
}

// UnmarshalJSON decodes a JSON scalar or structure. Whole numbers decode
// to int64, other numbers to float64.
func (m *MetaValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			v = i
		} else if f, err := n.Float64(); err == nil {
			v = f
		}
	}
	*m = ValueOf(v)
	return nil
}

// Metadata maps case-sensitive keys to values. Last write wins.
type Metadata map[string]MetaValue

// Get returns the value for key.
func (md Metadata) Get(key string) (MetaValue, bool) {
	v, ok := md[key]
	return v, ok
}

// Raw returns a plain map of raw values, or nil for an empty Metadata.
func (md Metadata) Raw() map[string]any {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = v.raw
	}
	return out
}

// Equal reports whether both maps hold the same keys and equal values.
func (md Metadata) Equal(other Metadata) bool {
	if len(md) != len(other) {
		return false
	}
	for k, v := range md {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MetadataSource is implemented by every envelope; it is the lookup used
// by [GetMetadata].
type MetadataSource interface {
	MetadataValue(key string) (MetaValue, bool)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return sserr.InvalidArgument("key", "result: metadata key must not be blank")
	}
	return nil
}

// GetMetadata returns the metadata value for key converted to T.
//
// It fails with errors.CodeInvalidArgument for a blank key,
// errors.CodeMetadataNotFound when the key was never written and
// errors.CodeCast when the value is nil or cannot be converted. A
// missing key never yields the zero value.
//
// Values are returned directly when the stored type is T. Otherwise
// numeric, bool, string, time and duration targets are converted with
// spf13/cast, e.g. an int stored under "rowCount" can be read as int64,
// float64 or string. Integer and float32 targets are range checked first:
// a value that does not fit T fails with errors.CodeCast instead of
// wrapping.
//
//	r := result.New()
//	_ = r.AddMetadata("attempts", 300)
//	n, _ := result.GetMetadata[int64](r, "attempts") // 300
//	s, _ := result.GetMetadata[string](r, "attempts") // "300"
//	_, err := result.GetMetadata[int8](r, "attempts") // CAST_001, out of range
//	_, err = result.GetMetadata[int](r, "missing")    // NF_002
func GetMetadata[T any](src MetadataSource, key string) (T, error) {
	var zero T
	if src == nil {
		return zero, sserr.NilArgument("source")
	}
	if err := checkKey(key); err != nil {
		return zero, err
	}
	mv, ok := src.MetadataValue(key)
	if !ok {
		return zero, sserr.Newf(sserr.CodeMetadataNotFound, "result: metadata item not found: %s", key).
			WithDetail("key", key)
	}
	if mv.kind == KindNull {
		return zero, castError(key, mv, zero, nil, "value is null")
	}
	if v, ok := mv.raw.(T); ok {
		return v, nil
	}
	if err := checkRange[T](mv); err != nil {
		return zero, castError(key, mv, zero, err, "value out of range")
	}
	v, err := convert[T](mv)
	if err != nil {
		return zero, castError(key, mv, zero, err, "conversion failed")
	}
	return v, nil
}

func castError(key string, mv MetaValue, target any, cause error, reason string) *sserr.Error {
	e := &sserr.Error{
		Code: sserr.CodeCast,
		Message: fmt.Sprintf("result: cannot convert metadata value for key %q from %s to %T: %s",
			key, mv.kind, target, reason),
		Cause: cause,
	}
	return e.WithDetail("key", key)
}

// checkRange rejects numeric sources that do not fit the integer or
// float32 target. cast truncates silently, so this runs first.
func checkRange[T any](mv MetaValue) error {
	var out T
	switch any(out).(type) {
	case int:
		return checkSigned(mv, math.MinInt, math.MaxInt)
	case int8:
		return checkSigned(mv, math.MinInt8, math.MaxInt8)
	case int16:
		return checkSigned(mv, math.MinInt16, math.MaxInt16)
	case int32:
		return checkSigned(mv, math.MinInt32, math.MaxInt32)
	case int64:
		return checkSigned(mv, math.MinInt64, math.MaxInt64)
	case uint:
		return checkUnsigned(mv, math.MaxUint)
	case uint8:
		return checkUnsigned(mv, math.MaxUint8)
	case uint16:
		return checkUnsigned(mv, math.MaxUint16)
	case uint32:
		return checkUnsigned(mv, math.MaxUint32)
	case uint64:
		return checkUnsigned(mv, math.MaxUint64)
	case float32:
		return checkFloat32(mv)
	}
	return nil
}

func checkSigned(mv MetaValue, lo, hi int64) error {
	switch mv.kind {
	case KindInt:
		return inSigned(mv.i, lo, hi)
	case KindDuration:
		return inSigned(int64(mv.d), lo, hi)
	case KindFloat:
		t, err := integral(mv.f)
		if err != nil {
			return err
		}
		// float64(hi)+1 rounds to 2^63 for int64, which is the bound.
		if t < float64(lo) || t >= float64(hi)+1 {
			return fmt.Errorf("%v overflows [%d, %d]", mv.f, lo, hi)
		}
	case KindString:
		n, err := cast.ToInt64E(strings.TrimSpace(mv.s))
		if err != nil {
			return nil
		}
		return inSigned(n, lo, hi)
	case KindOther:
		if _, ok := unsignedRaw(mv.raw); ok {
			return fmt.Errorf("%v overflows [%d, %d]", mv.raw, lo, hi)
		}
	}
	return nil
}

func checkUnsigned(mv MetaValue, hi uint64) error {
	switch mv.kind {
	case KindInt:
		return inUnsigned(mv.i, hi)
	case KindDuration:
		return inUnsigned(int64(mv.d), hi)
	case KindFloat:
		t, err := integral(mv.f)
		if err != nil {
			return err
		}
		if t < 0 || t >= float64(hi)+1 {
			return fmt.Errorf("%v overflows [0, %d]", mv.f, hi)
		}
	case KindString:
		s := strings.TrimSpace(mv.s)
		if strings.HasPrefix(s, "-") {
			return fmt.Errorf("%q is negative", mv.s)
		}
		n, err := cast.ToUint64E(s)
		if err != nil {
			return nil
		}
		if n > hi {
			return fmt.Errorf("%d overflows [0, %d]", n, hi)
		}
	case KindOther:
		if u, ok := unsignedRaw(mv.raw); ok && u > hi {
			return fmt.Errorf("%d overflows [0, %d]", u, hi)
		}
	}
	return nil
}

func checkFloat32(mv MetaValue) error {
	f := mv.f
	switch mv.kind {
	case KindFloat:
	case KindString:
		v, err := cast.ToFloat64E(strings.TrimSpace(mv.s))
		if err != nil {
			return nil
		}
		f = v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if math.Abs(f) > math.MaxFloat32 {
		return fmt.Errorf("%v overflows float32", f)
	}
	return nil
}

func inSigned(n, lo, hi int64) error {
	if n < lo || n > hi {
		return fmt.Errorf("%d overflows [%d, %d]", n, lo, hi)
	}
	return nil
}

func inUnsigned(n int64, hi uint64) error {
	if n < 0 || uint64(n) > hi {
		return fmt.Errorf("%d overflows [0, %d]", n, hi)
	}
	return nil
}

// integral truncates f toward zero as a Go conversion would, rejecting
// NaN and infinities.
func integral(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return math.Trunc(f), nil
}

func unsignedRaw(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint64:
		return x, true
	}
	return 0, false
}

func convert[T any](mv MetaValue) (T, error) {
	var out T
	raw := mv.raw
	var err error
	switch p := any(&out).(type) {
	case *int:
		*p, err = cast.ToIntE(raw)
	case *int8:
		*p, err = cast.ToInt8E(raw)
	case *int16:
		*p, err = cast.ToInt16E(raw)
	case *int32:
		*p, err = cast.ToInt32E(raw)
	case *int64:
		*p, err = cast.ToInt64E(raw)
	case *uint:
		*p, err = cast.ToUintE(raw)
	case *uint8:
		*p, err = cast.ToUint8E(raw)
	case *uint16:
		*p, err = cast.ToUint16E(raw)
	case *uint32:
		*p, err = cast.ToUint32E(raw)
	case *uint64:
		*p, err = cast.ToUint64E(raw)
	case *float32:
		*p, err = cast.ToFloat32E(raw)
	case *float64:
		*p, err = cast.ToFloat64E(raw)
	case *bool:
		*p, err = cast.ToBoolE(raw)
	case *string:
		*p, err = cast.ToStringE(raw)
	case *time.Duration:
		*p, err = cast.ToDurationE(raw)
	case *time.Time:
		*p, err = cast.ToTimeE(raw)
	default:
		err = fmt.Errorf("unsupported target type %T", out)
	}
	return out, err
}
