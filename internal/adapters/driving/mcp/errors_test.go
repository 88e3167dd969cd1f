package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

func TestDecodeError(t *testing.T) {
	err := DecodeError("[not_found] not found: wells")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "not found: wells")

	var remote *RemoteError
	assert.True(t, errors.As(err, &remote))
	assert.Equal(t, CodeNotFound, remote.Code)
}

func TestDecodeError_Unclassified(t *testing.T) {
	err := DecodeError("something broke")
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.EqualError(t, err, "something broke")

	err = DecodeError("[internal] disk\nfull")
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.EqualError(t, err, "disk\nfull")
}

func TestErrorCode_RoundTrip(t *testing.T) {
	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrNotConfigured,
		domain.ErrSessionNotOpen, domain.ErrSurveyOutOfRange,
		domain.ErrUnknownArchitecture, domain.ErrProbeFailed,
	} {
		decoded := DecodeError(toolError(sentinel).Error())
		assert.ErrorIs(t, decoded, sentinel)
		assert.EqualError(t, decoded, sentinel.Error())
	}
}
