package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type caller struct{}

func (caller) name() string {
	return GetFuncName()
}

func (caller) outer() string {
	return caller{}.inner()
}

func (caller) inner() string {
	return GetCallerFuncName()
}

func TestGetFuncName(t *testing.T) {
	assert.Equal(t, "helper.TestGetFuncName", GetFuncName())
	assert.Equal(t, "helper.caller.name", caller{}.name())
	assert.Equal(t, "helper.caller.outer", caller{}.outer())
}
