// Package led holds the frame sinks the engine writes to: a logging
// simulator, a one-pixel-per-panel NRZ strip and a fader that plays out
// the transition time of every record.
package led

import "github.com/coreman2200/panelfx/internal/render"

// Driver abstracts an LED output sink.
type Driver = render.Sink
