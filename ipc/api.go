// Package ipc exposes the playback core over a loopback HTTP control plane,
// so a separate process (a remote, a script, a second window) can drive
// playback without linking against core directly.
package ipc

import "fmt"

const (
	PingPath     = "/ping"
	PlayPath     = "/transport/play"
	PausePath    = "/transport/pause"
	PlayPausePath = "/transport/playpause"
	SeekToPath   = "/transport/seek-to"   // ?s=<seconds>
	SeekByPath   = "/transport/seek-by"   // ?s=<+/- seconds>
	StepPath     = "/transport/step"      // ?dir=1|-1
	ChapterPath  = "/chapter"             // GET: current chapter index
)

// Response is the JSON body of every non-GET response.
type Response struct {
	Error string `json:"error,omitempty"`
}

func SeekToSecondsPath(secs float64) string {
	return fmt.Sprintf("%s?s=%0.2f", SeekToPath, secs)
}

func SeekBySecondsPath(secs float64) string {
	return fmt.Sprintf("%s?s=%0.2f", SeekByPath, secs)
}

func StepFramePath(dir int) string {
	return fmt.Sprintf("%s?dir=%d", StepPath, dir)
}
