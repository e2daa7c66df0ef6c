package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithErrKeepsSentinelIdentity(t *testing.T) {
	sentinel := New(http.StatusConflict, "time slot already booked")
	cause := errors.New("overlaps booking 42")

	err := fmt.Errorf("create: %w", sentinel.WithErr(cause))

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, New(http.StatusConflict, "other"))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
}
