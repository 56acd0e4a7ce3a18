package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Stock is critically low - immediate reorder needed", StatusMessage(StatusCritical))
	assert.Equal(t, "Stock is below reorder point - consider reordering", StatusMessage(StatusLow))
	assert.Equal(t, "Stock levels are adequate", StatusMessage(StatusOK))
	assert.Empty(t, StatusMessage(StatusCode("BOGUS")))
}

func TestStatusPriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, StatusPriority(StatusCritical))
	assert.Equal(t, PriorityMedium, StatusPriority(StatusLow))
	assert.Equal(t, PriorityLow, StatusPriority(StatusOK))
	assert.Equal(t, PriorityLow, StatusPriority(StatusCode("BOGUS")))
}
