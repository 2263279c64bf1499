package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := InvalidInput("numbers must be an array")
	wrapped := Wrap(base, "failed to read sample")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "failed to read sample: numbers must be an array", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	sentinel := stderrors.New("disk on fire")
	wrapped := Wrapf(sentinel, "reading %s", "numbers.json")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, sentinel))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("cli: %w", NotFound("test \"runs\""))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeUnsupportedFormat, stderrors.New("bad ext"))
	assert.Equal(t, CodeUnsupportedFormat, GetCode(err))
	assert.Contains(t, err.Error(), "bad ext")
	assert.Equal(t, CodeUnsupportedFormat, GetCode(UnsupportedFormat(".txt")))
}
