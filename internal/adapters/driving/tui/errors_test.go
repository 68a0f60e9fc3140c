package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingAskService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingAskService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAskService.Error(), "ask service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
