package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentWrapsSentinel(t *testing.T) {
	err := InvalidArgument("quantity must be > 0, got %d", 0)

	require.Equal(t, CodeInvalidArgument, err.Code)
	require.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	require.Equal(t, "quantity must be > 0, got 0", err.Message)
	require.EqualError(t, err, "invalid argument: quantity must be > 0, got 0")
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.True(t, IsAppError(err))
}

func TestIsInvalidArgumentThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("quote: %w", InvalidArgument("vatPercent must be between 0 and 100"))
	require.True(t, IsInvalidArgument(wrapped))
	require.False(t, IsInvalidArgument(errors.New("other")))
}

func TestNilAppError(t *testing.T) {
	var e *AppError
	require.Equal(t, "", e.Error())
	require.Nil(t, e.Unwrap())
}

func TestParseIntDefault(t *testing.T) {
	v, err := ParseIntDefault("", 7)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	v, err = ParseIntDefault(" 20 ", 7)
	require.NoError(t, err)
	require.Equal(t, 20, v)

	_, err = ParseIntDefault("twenty", 7)
	require.Error(t, err)
}
