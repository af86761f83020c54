package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestStandardizeFramePassThrough(t *testing.T) {
	frame := solidFrame(t, 1080, 1920, 10, 20, 30)

	std, owned := StandardizeFrame(frame, 1920, 1080)
	assert.False(t, owned)
	assert.Equal(t, frame.Ptr(), std.Ptr())
}

func TestStandardizeFrameResizes(t *testing.T) {
	frame := solidFrame(t, 480, 640, 10, 20, 30)

	std, owned := StandardizeFrame(frame, 1920, 1080)
	require.True(t, owned)
	defer std.Close()

	assert.Equal(t, 1920, std.Cols())
	assert.Equal(t, 1080, std.Rows())

	// Input frame untouched.
	assert.Equal(t, 640, frame.Cols())
	assert.Equal(t, 480, frame.Rows())
	assert.Equal(t, uint8(10), frame.GetUCharAt(0, 0))

	// A solid frame resizes to the same solid color.
	assert.Equal(t, uint8(10), std.GetUCharAt(500, 500*3+0))
	assert.Equal(t, uint8(20), std.GetUCharAt(500, 500*3+1))
	assert.Equal(t, uint8(30), std.GetUCharAt(500, 500*3+2))
}
