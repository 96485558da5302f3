package sbus

// Script is an in-memory Source replaying a sequence of reads.
// Each Read consumes one step: either a chunk of bytes or an error.
// A chunk larger than the buffer is split across multiple reads.
// After the script is exhausted Read reports no data.
type Script struct {
	steps []scriptStep
}

type scriptStep struct {
	data []byte
	err  error
}

// NewScript creates an empty Script.
func NewScript() *Script {
	return &Script{}
}

// Bytes appends a read returning data.
func (s *Script) Bytes(data ...byte) *Script {
	s.steps = append(s.steps, scriptStep{data: data})
	return s
}

// Frames appends one read per frame.
func (s *Script) Frames(frames ...Frame) *Script {
	for n := range frames {
		s.Bytes(frames[n].Bytes()...)
	}
	return s
}

// Idle appends a read returning no data.
func (s *Script) Idle() *Script {
	s.steps = append(s.steps, scriptStep{})
	return s
}

// Err appends a read returning err.
func (s *Script) Err(err error) *Script {
	s.steps = append(s.steps, scriptStep{err: err})
	return s
}

// Remaining returns the number of steps not consumed.
func (s *Script) Remaining() int {
	return len(s.steps)
}

// Read implements Source.
func (s *Script) Read(p []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, nil
	}
	step := &s.steps[0]
	if step.err != nil {
		s.steps = s.steps[1:]
		return 0, step.err
	}
	n := copy(p, step.data)
	if step.data = step.data[n:]; len(step.data) == 0 {
		s.steps = s.steps[1:]
	}
	return n, nil
}
