package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsError_PlatformError(t *testing.T) {
	t.Parallel()
	platformErr := New(CodeValidation, "test")

	got, ok := AsError(platformErr)
	require.True(t, ok, "AsError should return true for platform error")
	assert.Equal(t, platformErr, got, "AsError should return the same platform error")
}

func TestAsError_WrappedPlatformError(t *testing.T) {
	t.Parallel()
	platformErr := New(CodeValidation, "test")
	wrapped := Wrap(platformErr, CodeInternal, "wrapper")

	got, ok := AsError(wrapped)
	require.True(t, ok, "AsError should return true for wrapped platform error")
	assert.Equal(t, CodeInternal, got.Code, "AsError should return outer error")
}

func TestAsError_StandardError(t *testing.T) {
	t.Parallel()
	stdErr := errors.New("standard error")

	got, ok := AsError(stdErr)
	assert.False(t, ok, "AsError should return false for standard error")
	assert.Nil(t, got, "AsError should return nil for standard error")
}

func TestAsError_Nil(t *testing.T) {
	t.Parallel()
	got, ok := AsError(nil)
	assert.False(t, ok, "AsError should return false for nil")
	assert.Nil(t, got, "AsError should return nil for nil input")
}

func TestAsError_DeepChain(t *testing.T) {
	t.Parallel()
	platformErr := New(CodeInternal, "internal")
	doubleWrapped := errors.Join(errors.New("outer"), platformErr)

	got, ok := AsError(doubleWrapped)
	require.True(t, ok, "AsError should find platform error in deep chain")
	assert.Equal(t, CodeInternal, got.Code, "AsError found wrong error")
}

func TestGetCode_PlatformError(t *testing.T) {
	t.Parallel()
	err := New(CodeValidation, "test")

	got := GetCode(err)
	assert.Equal(t, CodeValidation, got)
}

func TestGetCode_StandardError(t *testing.T) {
	t.Parallel()
	err := errors.New("standard error")

	got := GetCode(err)
	assert.Equal(t, Code(""), got, "GetCode() should return empty string for standard error")
}

func TestGetCode_Nil(t *testing.T) {
	t.Parallel()
	got := GetCode(nil)
	assert.Equal(t, Code(""), got, "GetCode(nil) should return empty string")
}

func TestHasCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(CodeValidation, "test"),
			code: CodeValidation,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(CodeValidation, "test"),
			code: CodeInternal,
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			code: CodeValidation,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: CodeValidation,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HasCode(tt.err, tt.code))
		})
	}
}

func TestIsValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"CodeValidation", New(CodeValidation, "test"), true},
		{"CodeValidationRequired", New(CodeValidationRequired, "test"), true},
		{"CodeInternal", New(CodeInternal, "test"), false},
		{"CodePrecondition", New(CodePrecondition, "test"), false},
		{"standard error", errors.New("standard"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidation(tt.err))
		})
	}
}

func TestIsInternal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"CodeInternal", New(CodeInternal, "test"), true},
		{"CodeInternalConfiguration", New(CodeInternalConfiguration, "test"), true},
		{"CodeValidation", New(CodeValidation, "test"), false},
		{"CodeAggregate", New(CodeAggregate, "test"), false},
		{"standard error", errors.New("standard"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsInternal(tt.err))
		})
	}
}

func TestCheckFunctions_WithWrappedErrors(t *testing.T) {
	t.Parallel()
	inner := New(CodeValidation, "bad field")
	outer := Wrap(inner, CodeInternal, "operation failed")

	// The outer error is INT, not VAL.
	assert.False(t, IsValidation(outer), "IsValidation should check outer error code, not cause")
	assert.True(t, IsInternal(outer), "IsInternal should return true for outer error")
}

func TestCheckFunctions_Exhaustive(t *testing.T) {
	t.Parallel()
	allCodes := []struct {
		code         Code
		isValidation bool
		isInternal   bool
	}{
		{CodeValidation, true, false},
		{CodeValidationRequired, true, false},
		{CodeInternal, false, true},
		{CodeInternalConfiguration, false, true},
		{CodeAggregate, false, false},
		{CodePrecondition, false, false},
	}

	for _, tc := range allCodes {
		t.Run(string(tc.code), func(t *testing.T) {
			t.Parallel()
			err := New(tc.code, "test")

			assert.Equal(t, tc.isValidation, IsValidation(err), "IsValidation()")
			assert.Equal(t, tc.isInternal, IsInternal(err), "IsInternal()")
		})
	}
}
