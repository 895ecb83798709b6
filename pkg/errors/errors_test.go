package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrConflict, "Email already in use")

	assert.Equal(t, "Email already in use", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, stderrors.Is(err, ErrConflict))
	assert.False(t, stderrors.Is(err, ErrValidation))
	assert.Equal(t, "conflict", ErrConflict.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestFromErrorFindsWrapped(t *testing.T) {
	inner := Clone(ErrNotFound, "User not found")
	appErr := FromError(fmt.Errorf("lookup: %w", inner))

	assert.Equal(t, inner, appErr)
}
