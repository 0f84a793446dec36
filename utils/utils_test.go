package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hpcfactory/condor-api/utils"
)

func TestGenerateRandomString(t *testing.T) {
	s := utils.GenerateRandomString(10)
	assert.Len(t, s, 10)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(
			"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", c))
	}
}
