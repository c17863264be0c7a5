package core

import (
	"errors"
	"log"

	"github.com/dweymouth/playcore/media"
)

var errNoVideoOutputFactory = errors.New("playcore: no NewVideoOutput factory configured")

// HandleForceWindow creates or tears down the video output when there is no
// real video chain driving it (idle, audio-only, or a stalled video track
// that never produced a frame). force makes the decision unconditional,
// used once when entering idle mode. Returns -1 on VO init failure.
func (c *Context) HandleForceWindow(force bool) int {
	act := !c.Playing || c.PlaybackInitialized || force

	stalledVideo := c.PlaybackInitialized && c.RestartComplete &&
		c.VideoStatus == StatusEOF && c.HasVideoChain && !c.VideoOutput.ConfigOK()

	if c.HasVideoChain && !stalledVideo {
		return 0
	}

	if c.Opts.ForceVO == ForceVONever {
		if act && !c.HasVideoChain {
			c.uninitVideoOut()
		}
		return 0
	}

	if c.Opts.ForceVO != ForceVOAlways && !act {
		return 0
	}

	if err := c.ensureVideoOutput(); err != nil {
		c.Opts.ForceVO = ForceVONever
		c.uninitVideoOut()
		log.Printf("playcore: error opening/initializing the VO window: %v", err)
		return -1
	}

	if !c.VideoOutput.ConfigOK() || force {
		if err := c.reconfigVideoOutput(); err != nil {
			c.Opts.ForceVO = ForceVONever
			c.uninitVideoOut()
			log.Printf("playcore: error opening/initializing the VO window: %v", err)
			return -1
		}
	}

	return 0
}

func (c *Context) ensureVideoOutput() error {
	if c.VideoOutput != nil {
		return nil
	}
	if c.NewVideoOutput == nil {
		return errNoVideoOutputFactory
	}
	vo, err := c.NewVideoOutput()
	if err != nil {
		return err
	}
	c.VideoOutput = vo
	c.MouseCursorVisible = true
	return nil
}

func (c *Context) reconfigVideoOutput() error {
	formats := c.VideoOutput.QueryFormats()
	format := ""
	if len(formats) > 0 {
		format = formats[0] // pick whatever works
	}
	params := media.VideoParams{Format: format, Width: 960, Height: 480, ParW: 1, ParH: 1}
	if err := c.VideoOutput.Reconfig(params); err != nil {
		return err
	}
	c.updateScreensaverState()
	c.VideoOutput.SetPaused(true)
	c.VideoOutput.Redraw()
	c.emit(Event{Type: EventVideoReconfig})
	return nil
}

func (c *Context) uninitVideoOut() {
	if c.VideoOutput != nil {
		c.VideoOutput.Uninit()
		c.VideoOutput = nil
	}
}
