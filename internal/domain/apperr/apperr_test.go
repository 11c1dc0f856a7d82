package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindConflict, "account already exists")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindInternal))
}

func TestKindOf_WrappedChain(t *testing.T) {
	inner := Wrap(KindUnavailable, "commit transaction failed", errors.New("broken pipe"))
	outer := fmt.Errorf("registering: %w", inner)

	assert.Equal(t, KindUnavailable, KindOf(outer))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := Wrap(KindConflict, "account already exists", cause)

	assert.Equal(t, "account already exists: duplicate key value", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := New(KindNotFound, "account not found")
	assert.Equal(t, "account not found", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
	assert.Equal(t, "internal", KindInternal.String())
}
