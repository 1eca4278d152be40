package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeInvalidArgument, CategoryArgument},
		{CodeNilArgument, CategoryArgument},
		{CodeMetadataNotFound, CategoryNotFound},
		{CodeCast, CategoryCast},
		{CodeTimeoutDatabase, CategoryTimeout},
		{Code("PLAIN"), "PLAIN"},
		{Code(""), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := New(CodeInvalidArgument, "key is blank")
	if got := err.Error(); got != "ARG_001: key is blank" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(errors.New("conn reset"), CodeInternalDatabase, "query failed")
	if got := wrapped.Error(); got != "INT_002: query failed: conn reset" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeCast, http.StatusBadRequest},
		{CodeValidationRequired, http.StatusBadRequest},
		{CodeMetadataNotFound, http.StatusNotFound},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternalDatabase, http.StatusInternalServerError},
		{Code("UNKNOWN_1"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := New(tt.code, "x").HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError_WithDetailDoesNotMutate(t *testing.T) {
	base := New(CodeCast, "bad cast").WithDetail("key", "rowCount")
	derived := base.WithDetail("type", "int")

	if len(base.Details) != 1 {
		t.Errorf("base details mutated: %v", base.Details)
	}
	if derived.Details["key"] != "rowCount" || derived.Details["type"] != "int" {
		t.Errorf("derived details = %v", derived.Details)
	}
}

func TestError_Format(t *testing.T) {
	err := Wrap(errors.New("boom"), CodeInternal, "failed").WithDetail("k", 1)

	if got := fmt.Sprintf("%v", err); got != err.Error() {
		t.Errorf("%%v = %q", got)
	}
	plus := fmt.Sprintf("%+v", err)
	for _, want := range []string{`Code: "INT_001"`, `Message: "failed"`, "Details:", "Cause: boom"} {
		if !strings.Contains(plus, want) {
			t.Errorf("%%+v = %q, missing %q", plus, want)
		}
	}
	if got := fmt.Sprintf("%q", err); got != fmt.Sprintf("%q", err.Error()) {
		t.Errorf("%%q = %s", got)
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, CodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, CodeInternal, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestConstructors(t *testing.T) {
	if e := InvalidArgument("key", "key must not be blank"); e.Code != CodeInvalidArgument || e.Details["argument"] != "key" {
		t.Errorf("InvalidArgument = %+v", e)
	}
	if e := NilArgument("result"); e.Code != CodeNilArgument || e.Message != "result must not be nil" {
		t.Errorf("NilArgument = %+v", e)
	}
	if e := NotFound("missing"); e.Code != CodeNotFound {
		t.Errorf("NotFound = %+v", e)
	}
	if e := Newf(CodeCast, "cannot convert %s", "x"); e.Message != "cannot convert x" {
		t.Errorf("Newf message = %q", e.Message)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}

	own := New(CodeCast, "x")
	if FromError(fmt.Errorf("ctx: %w", own)) != own {
		t.Error("FromError should unwrap to the existing *Error")
	}

	foreign := errors.New("plain")
	got := FromError(foreign)
	if got.Code != CodeInternal || !errors.Is(got, foreign) {
		t.Errorf("FromError(foreign) = %+v", got)
	}
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"invalid argument", New(CodeInvalidArgument, "x"), IsInvalidArgument, true},
		{"nil argument is argument", NilArgument("r"), IsInvalidArgument, true},
		{"metadata not found", New(CodeMetadataNotFound, "x"), IsNotFound, true},
		{"cast", New(CodeCast, "x"), IsCast, true},
		{"cast is not not-found", New(CodeCast, "x"), IsNotFound, false},
		{"validation", New(CodeValidationRequired, "x"), IsValidation, true},
		{"internal", New(CodeInternalDatabase, "x"), IsInternal, true},
		{"timeout", New(CodeTimeoutDatabase, "x"), IsTimeout, true},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(CodeCast, "x")), IsCast, true},
		{"standard error", errors.New("x"), IsNotFound, false},
		{"nil", nil, IsInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetCodeAndHasCode(t *testing.T) {
	err := New(CodeMetadataNotFound, "x")
	if GetCode(err) != CodeMetadataNotFound {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if !HasCode(err, CodeMetadataNotFound) || HasCode(err, CodeNotFound) {
		t.Error("HasCode mismatch")
	}
	if GetCode(errors.New("x")) != "" || GetCode(nil) != "" {
		t.Error("GetCode on foreign/nil error should be empty")
	}
}
