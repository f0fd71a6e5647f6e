package flat2d

import (
	"log/slog"
	"time"
)

// FrameStats holds per-frame timing and draw-call metrics of a pass.
type FrameStats struct {
	CollectTime time.Duration
	SortTime    time.Duration
	SubmitTime  time.Duration
	Candidates  int // entities considered for collection
	Stats
}

// Dropped returns how many candidates did not become quads.
func (s *FrameStats) Dropped() int {
	return s.Candidates - s.Quads
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("collect", s.CollectTime),
		slog.Duration("sort", s.SortTime),
		slog.Duration("submit", s.SubmitTime),
		slog.Int("candidates", s.Candidates),
		slog.Int("quads", s.Quads),
		slog.Int("draw_calls", s.DrawCalls),
	)
}

// Runs counts maximal runs of consecutive quads sharing a texture. That is
// the number of draw calls Encode will issue for the current order.
func (b *Batch) Runs() int {
	return countRuns(b.quads)
}

func countRuns(quads []Quad) int {
	if len(quads) == 0 {
		return 0
	}
	count := 1
	prev := quads[0].Texture.id
	for i := 1; i < len(quads); i++ {
		if cur := quads[i].Texture.id; cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
