package serverutils

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-be/internal/dto"
)

func TestValidateRequestAllowsEmptyFirstMessage(t *testing.T) {
	msg := ""
	req := dto.ChatRequest{SessionId: "s1", Message: &msg}
	assert.NoError(t, ValidateRequest(req))
}

func TestValidateRequestRejectsMissingMessage(t *testing.T) {
	err := ValidateRequest(dto.ChatRequest{SessionId: "s1"})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestValidateRequestRejectsMissingSessionId(t *testing.T) {
	msg := "hi"
	err := ValidateRequest(dto.ChatRequest{Message: &msg})
	require.Error(t, err)
}
