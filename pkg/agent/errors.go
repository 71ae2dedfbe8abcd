package agent

import "errors"

// ErrNoCandidateOutput is returned if a refine loop exhausts every
// iteration without ever producing a generation (should not happen in
// practice; generation failures abort the run immediately instead).
var ErrNoCandidateOutput = errors.New("agent: refine loop produced no output")
