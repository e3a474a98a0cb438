package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckLen(t *testing.T) {
	assert.NoError(t, checkLen("make", "Royal", 1, 32))
	assert.NoError(t, checkLen("port", "LAX", 1, 5))
	assert.Error(t, checkLen("make", "", 1, 32))
	assert.Error(t, checkLen("port", "TOOLONG", 1, 5))
}

func TestCheckRange(t *testing.T) {
	assert.NoError(t, checkRange("age", 0, 0, maxShipAge))
	assert.NoError(t, checkRange("seats", 500, 0, maxShipSeats))
	assert.Error(t, checkRange("age", 501, 0, maxShipAge))
	assert.Error(t, checkRange("seats", -1, 0, maxShipSeats))
}
