package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	attrs, err := parseAttributes([]string{
		"priority=3",
		"weight=1.5",
		"hidden=true",
		"title=some text",
		"expr=a=b",
		"empty=",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"priority": 3,
		"weight":   1.5,
		"hidden":   true,
		"title":    "some text",
		"expr":     "a=b",
		"empty":    "",
	}, attrs)

	for _, kv := range []string{"novalue", "=value"} {
		_, err := parseAttributes([]string{kv})
		require.Error(t, err, kv)
	}
}

func TestFormatAttributes(t *testing.T) {
	require.Empty(t, formatAttributes(map[string]any{"name": "A"}))
	require.Equal(t, "a=1, b=x", formatAttributes(map[string]any{
		"name": "A",
		"b":    "x",
		"a":    1,
	}))
}
