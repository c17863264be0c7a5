// Package mpris exposes a core.Context over the MPRIS D-Bus media-player
// interface, so desktop shells (GNOME, KDE, playerctl) can see and control
// playback. The client-API binding spec.md describes as "out of scope, core
// only notifies" is implemented here.
package mpris

import (
	"encoding/base32"
	"errors"

	"github.com/dweymouth/playcore/core"
	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

const (
	trackIDPrefix     = "/PlayCore/Track/"
	noTrackObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"
)

var (
	_ types.OrgMprisMediaPlayer2Adapter                 = (*Handler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter           = (*Handler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapterLoopStatus = (*Handler)(nil)
)

var errNotSupported = errors.New("not supported")

// TrackInfo is the metadata the embedder supplies for the currently loaded
// file; core itself has no notion of title/album/artist.
type TrackInfo struct {
	ID     string
	Title  string
	Album  string
	Artist string
	ArtURL string
}

// Handler binds a core.Context to the MPRIS2 interfaces.
type Handler struct {
	// OnQuit, if set, is called when MPRIS requests the player quit.
	OnQuit func() error

	// OnRaise, if set, is called when MPRIS requests the player surface
	// its window.
	OnRaise func() error

	// NowPlaying returns metadata for the current track, or nil if none is
	// loaded.
	NowPlaying func() *TrackInfo

	ctx *core.Context
	s   *server.Server
	evt *events.EventHandler

	connErr      error
	curTrackPath string
}

// NewHandler builds an MPRIS handler for ctx. Call Start to begin listening.
func NewHandler(playerName string, ctx *core.Context) *Handler {
	h := &Handler{ctx: ctx, connErr: errors.New("not started")}
	h.s = server.NewServer(playerName, h, h)
	h.evt = events.NewEventHandler(h.s)

	ctx.OnEvent(func(e core.Event) {
		if h.connErr != nil {
			return
		}
		switch e.Type {
		case core.EventSeek:
			h.evt.Player.OnSeek(secondsToMicroseconds(ctx.GetPlaybackTime()))
		case core.EventPause, core.EventUnpause:
			h.evt.Player.OnPlayPause()
		case core.EventPlaybackRestart:
			h.evt.Player.OnTitle()
		}
	})

	return h
}

// Start begins listening for MPRIS requests and emitting signals.
func (h *Handler) Start() {
	h.connErr = nil
	go func() {
		h.connErr = h.s.Listen()
	}()
}

// Shutdown stops listening and releases D-Bus resources.
func (h *Handler) Shutdown() {
	if h.connErr == nil {
		h.s.Stop()
		h.connErr = errors.New("stopped")
	}
}

// OrgMprisMediaPlayer2Adapter

func (h *Handler) Identity() (string, error) { return "playcore", nil }

func (h *Handler) CanQuit() (bool, error) { return h.OnQuit != nil, nil }

func (h *Handler) Quit() error {
	if h.OnQuit != nil {
		return h.OnQuit()
	}
	return errors.New("no quit handler configured")
}

func (h *Handler) CanRaise() (bool, error) { return h.OnRaise != nil, nil }

func (h *Handler) Raise() error {
	if h.OnRaise != nil {
		return h.OnRaise()
	}
	return errors.New("no raise handler configured")
}

func (h *Handler) HasTrackList() (bool, error)            { return false, nil }
func (h *Handler) SupportedUriSchemes() ([]string, error) { return nil, nil }
func (h *Handler) SupportedMimeTypes() ([]string, error)  { return nil, nil }

// OrgMprisMediaPlayer2PlayerAdapter

func (h *Handler) Next() error     { return errNotSupported }
func (h *Handler) Previous() error { return errNotSupported }

func (h *Handler) Pause() error {
	h.post(func() { h.ctx.SetPauseState(true) })
	return nil
}

func (h *Handler) PlayPause() error {
	h.post(func() { h.ctx.SetPauseState(!h.ctx.UserPause) })
	return nil
}

func (h *Handler) Stop() error {
	h.post(func() { h.ctx.SetPauseState(true) })
	return nil
}

func (h *Handler) Play() error {
	h.post(func() { h.ctx.SetPauseState(false) })
	return nil
}

func (h *Handler) Seek(offset types.Microseconds) error {
	h.post(func() {
		h.ctx.QueueSeek(core.SeekRelative, microsecondsToSeconds(offset), core.SeekDefault, core.SeekFlagDelay)
	})
	return nil
}

func (h *Handler) SetPosition(trackID string, position types.Microseconds) error {
	if trackID != h.curTrackPath {
		return nil
	}
	h.post(func() {
		h.ctx.QueueSeek(core.SeekAbsolute, microsecondsToSeconds(position), core.SeekDefault, core.SeekFlagDelay)
	})
	return nil
}

func (h *Handler) OpenUri(string) error { return errNotSupported }

func (h *Handler) PlaybackStatus() (types.PlaybackStatus, error) {
	var status types.PlaybackStatus
	h.post(func() {
		switch {
		case h.ctx.UserPause:
			status = types.PlaybackStatusPaused
		case h.ctx.PlaybackActive:
			status = types.PlaybackStatusPlaying
		default:
			status = types.PlaybackStatusStopped
		}
	})
	return status, nil
}

func (h *Handler) LoopStatus() (types.LoopStatus, error) {
	var loop int
	h.post(func() { loop = h.ctx.Opts.LoopFile })
	if loop == 0 {
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusTrack, nil
}

func (h *Handler) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		h.post(func() { h.ctx.Opts.LoopFile = 0 })
	case types.LoopStatusTrack, types.LoopStatusPlaylist:
		h.post(func() { h.ctx.Opts.LoopFile = core.LoopInfinite })
	default:
		return errors.New("unknown loop status")
	}
	return nil
}

func (h *Handler) Rate() (float64, error)       { return 1, nil }
func (h *Handler) SetRate(float64) error        { return errNotSupported }
func (h *Handler) MinimumRate() (float64, error) { return 1, nil }
func (h *Handler) MaximumRate() (float64, error) { return 1, nil }

func (h *Handler) Metadata() (types.Metadata, error) {
	trackObjPath := noTrackObjectPath
	var info *TrackInfo
	if h.NowPlaying != nil {
		info = h.NowPlaying()
	}
	var length types.Microseconds
	h.post(func() {
		if d := h.ctx.GetTimeLength(); d != core.NOPTS {
			length = secondsToMicroseconds(d)
		}
	})

	if info == nil {
		return types.Metadata{TrackId: dbus.ObjectPath(trackObjPath), Length: length}, nil
	}

	h.curTrackPath = trackIDPrefix + encodeTrackID(info.ID)
	return types.Metadata{
		TrackId: dbus.ObjectPath(h.curTrackPath),
		Length:  length,
		Title:   info.Title,
		Album:   info.Album,
		Artist:  []string{info.Artist},
		ArtUrl:  info.ArtURL,
	}, nil
}

func (h *Handler) Volume() (float64, error)    { return 1, nil }
func (h *Handler) SetVolume(float64) error     { return errNotSupported }

func (h *Handler) Position() (int64, error) {
	var pos float64
	h.post(func() { pos = h.ctx.GetPlaybackTime() })
	return int64(secondsToMicroseconds(pos)), nil
}

func (h *Handler) CanGoNext() (bool, error)     { return false, nil }
func (h *Handler) CanGoPrevious() (bool, error) { return false, nil }
func (h *Handler) CanPlay() (bool, error)       { return true, nil }
func (h *Handler) CanPause() (bool, error)      { return true, nil }
func (h *Handler) CanSeek() (bool, error)       { return true, nil }
func (h *Handler) CanControl() (bool, error)    { return true, nil }

// post runs fn on ctx's own dispatch thread and blocks until it has run.
func (h *Handler) post(fn func()) {
	done := make(chan struct{})
	h.ctx.Dispatch.Post(func() {
		fn()
		close(done)
	})
	<-done
}

func microsecondsToSeconds(m types.Microseconds) float64 { return float64(m) / 1_000_000 }
func secondsToMicroseconds(s float64) types.Microseconds  { return types.Microseconds(s * 1_000_000) }

func encodeTrackID(id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	return base32.StdEncoding.WithPadding('0').EncodeToString([]byte(id))
}
