package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-tickets/pkg/util/errorutil"
)

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errorutil.ErrInvalidField))
	var fe *errorutil.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, field, fe.Field)
	assert.NotEmpty(t, fe.Constraint)
}

func TestRequireNonBlank(t *testing.T) {
	assert.NoError(t, RequireNonBlank("x", "title"))
	requireField(t, RequireNonBlank("", "title"), "title")
	requireField(t, RequireNonBlank(" \t\n", "title"), "title")
}

func TestRequireMaxLen(t *testing.T) {
	assert.NoError(t, RequireMaxLen(strings.Repeat("a", 80), 80, "title"))
	requireField(t, RequireMaxLen(strings.Repeat("a", 81), 80, "title"), "title")
	// multi-byte runes count once
	assert.NoError(t, RequireMaxLen(strings.Repeat("é", 80), 80, "title"))
}

func TestRequireEmail(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"reporter@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"", false},
		{"reporter", false},
		{"reporter@", false},
		{"@example.com", false},
		{"reporter@example", false},
		{"rep orter@example.com", false},
		{"a@b@example.com", false},
	}
	for _, tc := range cases {
		err := RequireEmail(tc.value, "reporterEmail")
		if tc.ok {
			assert.NoError(t, err, tc.value)
			continue
		}
		requireField(t, err, "reporterEmail")
	}
}

func TestRequireOneOf(t *testing.T) {
	assert.NoError(t, RequireOneOf("HIGH", "priority", "LOW", "HIGH"))
	requireField(t, RequireOneOf("URGENT", "priority", "LOW", "HIGH"), "priority")
	requireField(t, RequireOneOf("high", "priority", "LOW", "HIGH"), "priority")
}

func TestRequireRange(t *testing.T) {
	cases := []struct {
		value int
		ok    bool
	}{
		{4, false},
		{5, true},
		{60, true},
		{7200, true},
		{7201, false},
	}
	for _, tc := range cases {
		err := RequireRange(tc.value, 5, 7200, "slaMinutes")
		if tc.ok {
			assert.NoError(t, err)
			continue
		}
		requireField(t, err, "slaMinutes")
	}
}

func TestRequireTicketID(t *testing.T) {
	assert.NoError(t, RequireTicketID("TCK-1001"))
	requireField(t, RequireTicketID("  "), "id")
}
