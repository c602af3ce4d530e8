package hysteresis

import "errors"

// ErrIndexOutOfRange is returned by Override when index does not name an
// existing timeline event.
var ErrIndexOutOfRange = errors.New("hysteresis: event index out of range")
