package proc

import "errors"

// ErrNoCPU indicates that /proc/stat had no aggregate CPU line.
var ErrNoCPU = errors.New("proc: no cpu line")
