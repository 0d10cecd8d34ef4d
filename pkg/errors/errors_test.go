package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrorTypeConfiguration, "missing save directory")
	assert.Equal(t, "configuration error: missing save directory", err.Error())

	withCode := Newf(ErrorTypeNetwork, "server returned status %d", 503).WithCode(503)
	assert.Equal(t, "network error (code 503): server returned status 503", withCode.Error())
}

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"typed error", New(ErrorTypeEmptyResult, "no candidates"), ErrorTypeEmptyResult},
		{"wrapped typed error", fmt.Errorf("run failed: %w", New(ErrorTypeIO, "disk full")), ErrorTypeIO},
		{"plain error", fmt.Errorf("something broke"), ErrorTypeUnknown},
		{"nil", nil, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrorTypeNetwork, cause, "search request failed")

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, ErrorTypeNetwork))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsConfiguration(New(ErrorTypeConfiguration, "x")))
	assert.True(t, IsEmptyResult(New(ErrorTypeEmptyResult, "x")))
	assert.True(t, IsUnsupportedPlatform(New(ErrorTypeUnsupportedPlatform, "x")))
	assert.False(t, IsConfiguration(New(ErrorTypeIO, "x")))
}
