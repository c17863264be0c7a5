package core

// EventType enumerates the events emitted to client/scripts (spec.md §6).
type EventType int

const (
	EventCoreIdle EventType = iota
	EventPause
	EventUnpause
	EventSeek
	EventTick
	EventCacheUpdate
	EventChapterChange
	EventPlaybackRestart
	EventIdle
	EventVideoReconfig
	EventWinResize
	EventWinState
)

func (t EventType) String() string {
	switch t {
	case EventCoreIdle:
		return "core-idle"
	case EventPause:
		return "pause"
	case EventUnpause:
		return "unpause"
	case EventSeek:
		return "seek"
	case EventTick:
		return "tick"
	case EventCacheUpdate:
		return "cache-update"
	case EventChapterChange:
		return "chapter-change"
	case EventPlaybackRestart:
		return "playback-restart"
	case EventIdle:
		return "idle"
	case EventVideoReconfig:
		return "video-reconfig"
	case EventWinResize:
		return "win-resize"
	case EventWinState:
		return "win-state"
	default:
		return "unknown"
	}
}

// Event is one emitted notification.
type Event struct {
	Type EventType
}

type eventBus struct {
	subscribers []func(Event)
}

func newEventBus() *eventBus {
	return &eventBus{}
}

// OnEvent registers cb to be called, on the playloop thread, whenever any
// event is emitted.
func (c *Context) OnEvent(cb func(Event)) {
	c.events.subscribers = append(c.events.subscribers, cb)
}

func (c *Context) emit(e Event) {
	for _, cb := range c.events.subscribers {
		cb(e)
	}
}
