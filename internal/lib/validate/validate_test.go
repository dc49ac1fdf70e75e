package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("ana@uni.edu.pe"))
	assert.False(t, Email(""))
	assert.False(t, Email("ana"))
	assert.False(t, Email("ana@"))
}
