// Package testutil provides shared test helpers for the results SDK.
//
// Helpers accept [testing.TB]. Functions named Require* halt the test
// through testify's require; Assert* functions record the failure and
// continue. Every helper calls t.Helper().
package testutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// RequireErrorCode halts the test unless err is an *sserr.Error with the
// given code, and returns that error.
//
//	_, err := result.GetMetadata[int](r, "missing")
//	testutil.RequireErrorCode(t, err, sserr.CodeMetadataNotFound)
func RequireErrorCode(t testing.TB, err error, code sserr.Code, msgAndArgs ...any) *sserr.Error {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	ssErr, ok := sserr.AsError(err)
	require.True(t, ok, "expected *sserr.Error, got %T: %v", err, err)
	require.Equal(t, code, ssErr.Code,
		"error code mismatch: got %q, want %q (message: %s)",
		ssErr.Code, code, ssErr.Message)
	return ssErr
}

// AssertErrorCode is RequireErrorCode without halting.
func AssertErrorCode(t testing.TB, err error, code sserr.Code, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	ssErr, ok := sserr.AsError(err)
	if !assert.True(t, ok, "expected *sserr.Error, got %T: %v", err, err) {
		return false
	}
	return assert.Equal(t, code, ssErr.Code, "error code mismatch (message: %s)", ssErr.Message)
}

// RequirePanicCode halts the test unless fn panics with an *sserr.Error
// carrying code.
func RequirePanicCode(t testing.TB, code sserr.Code, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected panic")
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %T is not an error", recovered)
	RequireErrorCode(t, err, code)
}

// MarshalMap marshals v and decodes the JSON into a generic map so tests
// can inspect individual members.
func MarshalMap(t testing.TB, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "json.Marshal failed")
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m), "json.Unmarshal failed: %s", data)
	return m
}

// AssertJSONContains asserts that the JSON encoding of v contains
// expected.
func AssertJSONContains(t testing.TB, v any, expected string) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "json.Marshal failed")
	assert.Contains(t, string(data), expected,
		"expected JSON to contain %q, got: %s", expected, string(data))
}

// AssertJSONNotContains asserts that the JSON encoding of v does not
// contain unexpected. Use it to check that internal fields stay out of
// public payloads.
func AssertJSONNotContains(t testing.TB, v any, unexpected string) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "json.Marshal failed")
	assert.NotContains(t, string(data), unexpected,
		"expected JSON to NOT contain %q, got: %s", unexpected, string(data))
}

// NewJSONLogger returns a slog logger that writes JSON lines into the
// returned buffer at debug level and above.
func NewJSONLogger(t testing.TB) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

// DecodeLogLines parses every JSON line in buf.
func DecodeLogLines(t testing.TB, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m), "invalid log line: %s", line)
		out = append(out, m)
	}
	return out
}

// TempConfigFile writes content to config<ext> inside t.TempDir() with
// mode 0600 and returns its path.
func TempConfigFile(t testing.TB, content, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config"+ext)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to write %s", path)
	return path
}

// SetEnv sets key for the duration of the test and restores the
// previous state afterwards. Not for use with t.Parallel on shared keys.
func SetEnv(t testing.TB, key, value string) {
	t.Helper()
	prev, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value), "failed to set env var %s", key)
	t.Cleanup(func() {
		if existed {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
