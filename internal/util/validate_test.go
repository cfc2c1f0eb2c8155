package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArguments(t *testing.T) {
	schema := map[string]string{
		"message": "the text",
		"target":  "the destination",
	}

	tests := []struct {
		name      string
		args      map[string]any
		wantField string
	}{
		{
			name: "valid",
			args: map[string]any{"message": "hi", "target": "there"},
		},
		{
			name:      "missing required",
			args:      map[string]any{"target": "there"},
			wantField: "message",
		},
		{
			name:      "unexpected extra",
			args:      map[string]any{"message": "hi", "target": "there", "volume": 11},
			wantField: "volume",
		},
		{
			name:      "empty args against nonempty schema",
			args:      map[string]any{},
			wantField: "message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArguments(tt.args, schema)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateArguments_EmptySchema(t *testing.T) {
	assert.NoError(t, ValidateArguments(map[string]any{}, map[string]string{}))
	assert.NoError(t, ValidateArguments(nil, map[string]string{}))

	err := ValidateArguments(map[string]any{"extra": 1}, map[string]string{})
	require.Error(t, err)
}

func TestValidateArguments_MissingReportedFirst(t *testing.T) {
	// Missing keys take precedence over extra keys, and the smallest missing
	// key is reported.
	schema := map[string]string{"alpha": "", "beta": ""}
	err := ValidateArguments(map[string]any{"zulu": 1}, schema)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "alpha", verr.Field)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{name: "shorter than cap", in: "hello", maxLen: 10, want: "hello"},
		{name: "exactly at cap", in: "hello", maxLen: 5, want: "hello"},
		{name: "over cap", in: "hello world", maxLen: 5, want: "hello"},
		{name: "zero cap passes through", in: "hello", maxLen: 0, want: "hello"},
		{name: "multibyte runes", in: "héllo wörld", maxLen: 5, want: "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.maxLen))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"done": true}`, want: `{"done": true}`},
		{name: "plain fence", in: "```\n{\"done\": true}\n```", want: `{"done": true}`},
		{name: "json fence", in: "```json\n{\"done\": true}\n```", want: `{"done": true}`},
		{name: "surrounding whitespace", in: "  ```json\n{}\n```  ", want: "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}
