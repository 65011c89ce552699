package tests

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

// Internal сохраняет текст исходной ошибки и имя операции
func TestInternal_PreservesOriginalMessage(t *testing.T) {
	cause := errors.New("error finding user by email: connection refused")

	err := serr.Internal("error creating user", cause)

	require.Equal(t, "error creating user: error finding user by email: connection refused", err.Error())
	require.ErrorIs(t, err, serr.ErrInternal)
	require.ErrorIs(t, err, cause)
	require.Equal(t, serr.MsgInternal, serr.SafeMessage(err))
}

// виды ошибок различимы через errors.Is, даже если обёрнуты
func TestKinds_AreDistinguishable(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", serr.NotFound("error retrieving user by ID"))

	require.ErrorIs(t, wrapped, serr.ErrNotFound)
	require.NotErrorIs(t, wrapped, serr.ErrInternal)
	require.Equal(t, serr.MsgUserNotFound, serr.SafeMessage(wrapped))

	require.ErrorIs(t, serr.Conflict("error creating user"), serr.ErrConflict)
	require.ErrorIs(t, serr.Unauthorized(), serr.ErrUnauthorized)
}

// логин всегда возвращает одно и то же сообщение
func TestUnauthorized_MessageIsGeneric(t *testing.T) {
	require.Equal(t, "invalid email or password", serr.Unauthorized().Error())
	require.Equal(t, serr.Unauthorized().Error(), serr.Unauthorized().Error())
}

func TestSafeMessage_UnknownErrorIsInternal(t *testing.T) {
	require.Equal(t, serr.MsgInternal, serr.SafeMessage(errors.New("pq: password authentication failed")))
	require.Equal(t, serr.MsgEmailRegistered, serr.SafeMessage(serr.ErrAlreadyExists))
}
