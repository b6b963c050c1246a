package sim

import "github.com/W-A-James/G-SIM/internal/nbody"

// Recorder is an Observer that keeps a trajectory history: a deep copy of
// every body state at each recorded step. Stride controls downsampling; a
// Stride of k keeps every k-th step (1 keeps all, the zero value is
// treated as 1).
type Recorder struct {
	Stride int

	Times  []float64
	Frames [][]nbody.Body

	seen int
}

// NewRecorder returns a Recorder primed with the initial state of s, so
// the trajectory includes t=0.
func NewRecorder(s *Simulation, stride int) *Recorder {
	r := &Recorder{Stride: stride}
	r.record(s.Snapshot(), s.Time())
	return r
}

func (r *Recorder) OnStep(bodies []nbody.Body, t float64) {
	r.seen++
	stride := r.Stride
	if stride < 1 {
		stride = 1
	}
	if r.seen%stride != 0 {
		return
	}
	r.record(nbody.CloneBodies(bodies), t)
}

func (r *Recorder) record(bodies []nbody.Body, t float64) {
	r.Times = append(r.Times, t)
	r.Frames = append(r.Frames, bodies)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int { return len(r.Frames) }
