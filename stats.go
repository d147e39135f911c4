package meadow

import "github.com/sirupsen/logrus"

// FrameStats counts what a Renderer did since the last ClearScreen.
type FrameStats struct {
	// Draws is the number of sprite and UI draw calls accepted by the backend.
	Draws int
	// Tiles is the number of parallax tiles accepted by the backend.
	Tiles int
	// Culled is the number of sprites skipped because they were off-screen.
	Culled int
	// Skipped is the number of draws dropped for a missing texture, an
	// invalid region or a non-positive destination size.
	Skipped int
	// Failures is the number of draw calls rejected by the backend.
	Failures int
}

// DrawCalls returns the total number of draw calls issued to the backend.
func (s FrameStats) DrawCalls() int {
	return s.Draws + s.Tiles + s.Failures
}

// log prints the frame statistics at trace level.
func (s FrameStats) log() {
	if !logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	logger.WithFields(logrus.Fields{
		"draws":    s.Draws,
		"tiles":    s.Tiles,
		"culled":   s.Culled,
		"skipped":  s.Skipped,
		"failures": s.Failures,
	}).Trace("frame")
}
