// Package wavsource is a real demuxer+decoder pair backed by a .wav file,
// reading PCM chunks the same way backend/waveformimage.go does (NewDecoder,
// FwdToPCM, PCMBuffer against an audio.IntBuffer), so tests that need a real
// decode timeline don't have to fake one.
package wavsource

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/audio"
	wavpkg "github.com/go-audio/wav"

	"github.com/dweymouth/playcore/media"
)

const samplesPerChunk = 4096

var ErrInvalidWav = errors.New("wavsource: not a valid wav file")

var _ media.Demuxer = (*Source)(nil)
var _ media.Decoder = (*Decoder)(nil)

// Source is a demuxer for a single .wav file. It has exactly one track.
type Source struct {
	f         *os.File
	dec       *wavpkg.Decoder
	format    *audio.Format
	frameSize int64 // bytes per sample frame, across all channels
	dataStart int64
	fileSize  int64
	duration  float64
	pts       float64
}

// Open reads path as a wav file and positions at the start of its PCM data.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec := wavpkg.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, ErrInvalidWav
	}
	dur, err := dec.Duration()
	if err != nil {
		f.Close()
		return nil, err
	}
	format := dec.Format()
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, err
	}
	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Source{
		f:         f,
		dec:       dec,
		format:    format,
		frameSize: int64(dec.BitDepth/8) * int64(format.NumChannels),
		dataStart: dataStart,
		fileSize:  info.Size(),
		duration:  dur.Seconds(),
	}, nil
}

// Close releases the underlying file.
func (s *Source) Close() error { return s.f.Close() }

// NewDecoder returns a Decoder reading PCM chunks out of s.
func (s *Source) NewDecoder() *Decoder {
	return &Decoder{src: s, buf: &audio.IntBuffer{Data: make([]int, samplesPerChunk)}}
}

func (s *Source) Duration() float64      { return s.duration }
func (s *Source) Seekable() bool         { return true }
func (s *Source) TsResetsPossible() bool { return false }
func (s *Source) IsNetwork() bool        { return false }

func (s *Source) Filepos() int64 {
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return pos
}

// Seek repositions the file to the PCM frame at or just before pts (or pts*duration
// when SeekFactorFlag is set) and updates the current read timestamp.
func (s *Source) Seek(pts float64, flags media.DemuxFlags) bool {
	if flags&media.SeekFactorFlag != 0 {
		pts = pts * s.duration
	}
	if pts < 0 {
		pts = 0
	}
	frame := int64(pts * float64(s.format.SampleRate))
	offset := s.dataStart + frame*s.frameSize
	if offset > s.fileSize {
		offset = s.fileSize
	}
	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return false
	}
	s.pts = float64(frame) / float64(s.format.SampleRate)
	return true
}

func (s *Source) ReaderState() media.ReaderState {
	return media.ReaderState{TsDuration: s.duration}
}

func (s *Source) CacheInfo() media.CacheInfo {
	return media.CacheInfo{Idle: true, Size: s.fileSize}
}

func (s *Source) StreamSize() (int64, bool) { return s.fileSize, true }

// Decoder pulls PCM chunks directly out of a Source's wav.Decoder.
type Decoder struct {
	src    *Source
	buf    *audio.IntBuffer
	frame  media.Frame
	status media.FrameStatus
}

func (d *Decoder) TrackID() string     { return "audio-0" }
func (d *Decoder) IsVideo() bool       { return false }
func (d *Decoder) IsAudio() bool       { return true }
func (d *Decoder) SeekOffset() float64 { return 0 }

func (d *Decoder) Reset() error {
	d.status = media.DataOK
	return nil
}

// Work reads the next PCM chunk and advances the source's read timestamp.
func (d *Decoder) Work() error {
	n, err := d.src.dec.PCMBuffer(d.buf)
	if n == 0 || err == io.EOF {
		d.status = media.EOF
		return nil
	}
	if err != nil {
		return err
	}
	d.frame = media.Frame{PTS: d.src.pts, Data: d.buf.Data[:n]}
	frames := n / d.src.format.NumChannels
	d.src.pts += float64(frames) / float64(d.src.format.SampleRate)
	d.status = media.DataOK
	return nil
}

func (d *Decoder) GetFrame() (media.Frame, media.FrameStatus) {
	return d.frame, d.status
}
