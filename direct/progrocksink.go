package direct

import (
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

// ProgrockSink reports each command as a progrock vertex, selected via
// --progress=progrock. Grounded on
// internal/adapters/telemetry/progrock/{recorder.go,vertex.go}, adapted
// from one vertex per domain.Task to one vertex per PendingCommand, and
// from the teacher's ports.Telemetry indirection to direct.ProgressSink
// directly (kiln's command vertices don't need the extra
// Vertex/Telemetry port split since nothing else consumes them).
type ProgrockSink struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	vertex map[*PendingCommand]*progrock.VertexRecorder
}

// NewProgrockSink creates a sink recording onto w (a *progrock.Tape for
// an in-process terminal UI, or any progrock.Writer implementation).
func NewProgrockSink(w progrock.Writer) *ProgrockSink {
	return &ProgrockSink{
		w:      w,
		rec:    progrock.NewRecorder(w),
		vertex: make(map[*PendingCommand]*progrock.VertexRecorder),
	}
}

func (s *ProgrockSink) Plan(int) {}

func (s *ProgrockSink) Started(pc *PendingCommand) {
	name := pc.Description
	if name == "" {
		name = pc.Command
	}
	d := digest.FromString(name + pc.Command)
	s.vertex[pc] = s.rec.Vertex(d, name)
}

func (s *ProgrockSink) Finished(pc *PendingCommand, err error) {
	v, ok := s.vertex[pc]
	if !ok {
		return
	}
	v.Done(err)
	delete(s.vertex, pc)
}

func (s *ProgrockSink) Close() error {
	if c, ok := s.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
