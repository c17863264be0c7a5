// Command playcore-demo wires the playback core to a real wav-backed
// demuxer/decoder, the loopback HTTP control plane, and an MPRIS binding,
// and runs the playloop until the file reaches EOF or it's asked to quit.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/dweymouth/playcore/core"
	"github.com/dweymouth/playcore/ipc"
	"github.com/dweymouth/playcore/media"
	"github.com/dweymouth/playcore/media/memory"
	"github.com/dweymouth/playcore/media/wavsource"
	"github.com/dweymouth/playcore/mpris"
)

func main() {
	wavPath := flag.String("file", "", "path to a .wav file to play")
	ipcAddr := flag.String("ipc", "127.0.0.1:9119", "address for the loopback control-plane HTTP API")
	flag.Parse()

	if *wavPath == "" {
		log.Fatal("playcore-demo: -file is required")
	}

	src, err := wavsource.Open(*wavPath)
	if err != nil {
		log.Fatalf("playcore-demo: opening %s: %v", *wavPath, err)
	}
	defer src.Close()

	opts := core.DefaultOptions()
	ctx := core.New(opts)
	ctx.Demuxer = src
	ctx.Decoders = []media.Decoder{src.NewDecoder()}
	ctx.AudioOutput = memory.NewAudioOutput()
	ctx.Playing = true
	ctx.PlaybackInitialized = true

	ctx.OnEvent(func(e core.Event) {
		log.Printf("playcore-demo: event %s", e.Type)
	})

	srv := ipc.NewServer(ctx)
	listener, err := net.Listen("tcp", *ipcAddr)
	if err != nil {
		log.Fatalf("playcore-demo: listening on %s: %v", *ipcAddr, err)
	}
	go func() {
		log.Printf("playcore-demo: control plane listening on %s", listener.Addr())
		if err := http.Serve(listener, srv); err != nil {
			log.Printf("playcore-demo: control plane stopped: %v", err)
		}
	}()

	mp := mpris.NewHandler("playcore-demo", ctx)
	mp.NowPlaying = func() *mpris.TrackInfo {
		return &mpris.TrackInfo{ID: *wavPath, Title: *wavPath}
	}
	mp.Start()
	defer mp.Shutdown()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.StopPlayState == core.KeepPlaying {
		select {
		case <-sigCtx.Done():
			log.Print("playcore-demo: interrupted")
			return
		default:
		}
		ctx.RunPlayloop()
	}
	log.Printf("playcore-demo: stopped, final state %v", ctx.StopPlayState)
}
