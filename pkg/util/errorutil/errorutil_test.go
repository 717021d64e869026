package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorMatchesSentinel(t *testing.T) {
	err := NewInvalidField("title", "must be at most 80 characters")

	assert.True(t, errors.Is(err, ErrInvalidField))
	assert.Equal(t, `invalid field "title": must be at most 80 characters`, err.Error())

	wrapped := fmt.Errorf("build ticket: %w", err)
	var fe *FieldError
	require.True(t, errors.As(wrapped, &fe))
	assert.Equal(t, "title", fe.Field)
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(NewInvalidField("priority", "must be one of [LOW MEDIUM HIGH CRITICAL]"))
	require.NotNil(t, de)
	assert.Equal(t, CodeInvalidField, de.Code)
	assert.Equal(t, "priority", de.Details["field"])
	assert.True(t, errors.Is(de, ErrInvalidField))

	input := NewInvalidInput("decode batch", errors.New("bad yaml"))
	assert.Equal(t, CodeInvalidInput, ToDomainError(input).Code)
	assert.Equal(t, "decode batch: bad yaml", input.Error())

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, "internal error: boom", internal.Error())
}
