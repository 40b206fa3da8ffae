package common_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/application/common"
)

type pingRequest struct{ Message string }

type pingHandler struct{}

func (h *pingHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	req := request.(*pingRequest)
	return "pong: " + req.Message, nil
}

func TestMediatorDispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](m, &pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingRequest{Message: "hello"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong: hello", response)
}

func TestMediatorRejectsUnregisteredRequest(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	_, err := m.Send(context.Background(), &pingRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestMediatorRejectsDuplicateRegistration(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](m, &pingHandler{}))

	// Act
	err := common.RegisterHandler[*pingRequest](m, &pingHandler{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMediatorRejectsNilHandler(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	err := common.RegisterHandler[*pingRequest](m, nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler cannot be nil")
}

func TestMediatorRejectsNilRequest(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	_, err := m.Send(context.Background(), nil)

	// Assert
	require.Error(t, err)
}
