// AngelaMos | 2026
// database_test.go

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitteredDuration(t *testing.T) {
	// A zero or sub-jitter base must pass through unchanged instead of
	// panicking on an empty random span.
	assert.Equal(t, time.Duration(0), jitteredDuration(0))
	assert.Equal(t, 3*time.Nanosecond, jitteredDuration(3*time.Nanosecond))

	base := time.Hour
	for range 20 {
		got := jitteredDuration(base)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/7)
	}
}
