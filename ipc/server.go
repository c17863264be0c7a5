package ipc

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dweymouth/playcore/core"
)

// Server is the loopback HTTP control-plane for a core.Context. Every
// handler posts its work onto the context's Dispatch queue instead of
// touching the Context directly, since HTTP handlers run on their own
// goroutines and the Context is single-threaded.
type Server struct {
	ctx *core.Context
	mux *http.ServeMux
}

// NewServer builds the HTTP handler for ctx. The caller is responsible for
// serving it, e.g. with http.ListenAndServe("127.0.0.1:0", ipc.NewServer(ctx)).
func NewServer(ctx *core.Context) *Server {
	s := &Server{ctx: ctx, mux: http.NewServeMux()}
	s.mux.HandleFunc(PingPath, s.simple(func() error { return nil }))
	s.mux.HandleFunc(PlayPath, s.simple(func() error {
		s.post(func() { s.ctx.SetPauseState(false) })
		return nil
	}))
	s.mux.HandleFunc(PausePath, s.simple(func() error {
		s.post(func() { s.ctx.SetPauseState(true) })
		return nil
	}))
	s.mux.HandleFunc(PlayPausePath, s.simple(func() error {
		s.post(func() { s.ctx.SetPauseState(!s.ctx.UserPause) })
		return nil
	}))
	s.mux.HandleFunc(SeekToPath, s.seekHandler(core.SeekAbsolute))
	s.mux.HandleFunc(SeekByPath, s.seekHandler(core.SeekRelative))
	s.mux.HandleFunc(StepPath, func(w http.ResponseWriter, r *http.Request) {
		dir, err := strconv.Atoi(r.URL.Query().Get("dir"))
		if err != nil {
			s.writeErr(w, err)
			return
		}
		s.post(func() { s.ctx.StepFrame(dir) })
		s.writeOK(w)
	})
	s.mux.HandleFunc(ChapterPath, func(w http.ResponseWriter, r *http.Request) {
		ch := make(chan int, 1)
		s.post(func() { ch <- s.ctx.CurrentChapter() })
		json.NewEncoder(w).Encode(struct {
			Chapter int `json:"chapter"`
		}{<-ch})
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// post runs fn on the context's own dispatch thread and blocks until it has
// run, so an HTTP handler can safely read back a result.
func (s *Server) post(fn func()) {
	done := make(chan struct{})
	s.ctx.Dispatch.Post(func() {
		fn()
		close(done)
	})
	<-done
}

func (s *Server) seekHandler(t core.SeekType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secs, err := strconv.ParseFloat(r.URL.Query().Get("s"), 64)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		s.post(func() { s.ctx.QueueSeek(t, secs, core.SeekDefault, core.SeekFlagDelay) })
		s.writeOK(w)
	}
}

func (s *Server) simple(f func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(); err != nil {
			s.writeErr(w, err)
			return
		}
		s.writeOK(w)
	}
}

func (s *Server) writeOK(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(Response{})
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(Response{Error: err.Error()})
}
