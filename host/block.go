package host

import (
	"errors"
	"fmt"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
)

// ErrBlock is returned for recordings that do not split into whole bursts.
var ErrBlock = errors.New("host: recording is not a whole number of bursts")

// BlockSource replays a recording one frame-sized burst per Start, wrapping
// around at the end.
type BlockSource struct {
	raw      []int32
	burst    int
	offset   int
	started  int
	captured int
}

// NewBlockSource returns a source replaying raw in bursts of geom.FrameSize.
func NewBlockSource(geom core.ProcessorConfig, raw []int32) (*BlockSource, error) {
	if geom.FrameSize < 1 || len(raw) == 0 || len(raw)%geom.FrameSize != 0 {
		return nil, fmt.Errorf("%w: %d samples, burst %d", ErrBlock, len(raw), geom.FrameSize)
	}
	return &BlockSource{raw: raw, burst: geom.FrameSize}, nil
}

// Start moves to the next burst of the recording.
func (s *BlockSource) Start() {
	bursts := len(s.raw) / s.burst
	s.offset = (s.started % bursts) * s.burst
	s.started++
	s.captured = s.burst
}

// SamplesCaptured reports a full burst once Start has been called.
func (s *BlockSource) SamplesCaptured() int { return s.captured }

// WaitForSamples returns at once; a recorded burst is always complete.
func (s *BlockSource) WaitForSamples(int) {}

// ReadSample returns sample i of the current burst.
func (s *BlockSource) ReadSample(i int) int32 { return s.raw[s.offset+i] }
