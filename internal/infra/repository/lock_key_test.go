package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingLockKey(t *testing.T) {
	tests := []struct {
		name string
		a, b uint
	}{
		{"adjacent ids", 1, 2},
		{"past int32", 1, math.MaxInt32 + 2},
		{"past uint32", 7, 1<<32 + 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, bookingLockKey(tt.a), bookingLockKey(tt.b))
		})
	}

	assert.Equal(t, int64(0x6262)<<48|5, bookingLockKey(5))
	assert.Positive(t, bookingLockKey(math.MaxUint32))
}
