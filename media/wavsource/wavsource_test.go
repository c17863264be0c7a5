package wavsource

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/dweymouth/playcore/media"
)

// writeTestWav writes a minimal mono 16-bit PCM wav file containing a silent
// tone of the given duration.
func writeTestWav(t *testing.T, sampleRate int, seconds float64) string {
	t.Helper()

	numSamples := int(float64(sampleRate) * seconds)
	dataSize := numSamples * 2 // 16-bit mono

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < numSamples; i++ {
		// a ramp so PCMBuffer reads back distinguishable sample values
		binary.Write(&buf, binary.LittleEndian, int16(i%1000))
	}

	path := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpenReportsDurationAndFormat(t *testing.T) {
	path := writeTestWav(t, 8000, 1.0)
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if d := src.Duration(); d < 0.99 || d > 1.01 {
		t.Errorf("Duration = %v, want ~1.0", d)
	}
	if !src.Seekable() {
		t.Error("expected a file-backed source to be seekable")
	}
	if src.IsNetwork() {
		t.Error("expected IsNetwork == false")
	}
}

func TestDecoderWorkAdvancesPTS(t *testing.T) {
	path := writeTestWav(t, 8000, 1.0)
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	dec := src.NewDecoder()
	var lastPTS float64
	sawEOF := false
	for i := 0; i < 10; i++ {
		if err := dec.Work(); err != nil {
			t.Fatalf("Work: %v", err)
		}
		frame, status := dec.GetFrame()
		if status == media.EOF {
			sawEOF = true
			break
		}
		if frame.PTS <= lastPTS && i > 0 {
			t.Errorf("PTS did not advance: %v -> %v", lastPTS, frame.PTS)
		}
		lastPTS = frame.PTS
	}
	if !sawEOF && lastPTS == 0 {
		t.Error("expected PTS to advance from decoding at least one chunk")
	}
}

func TestDecoderReachesEOF(t *testing.T) {
	path := writeTestWav(t, 8000, 0.1)
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	dec := src.NewDecoder()
	for i := 0; i < 100; i++ {
		if err := dec.Work(); err != nil {
			t.Fatalf("Work: %v", err)
		}
		if _, status := dec.GetFrame(); status == media.EOF {
			return
		}
	}
	t.Fatal("expected EOF within 100 Work calls for a 0.1s file")
}

func TestSeekRepositionsFile(t *testing.T) {
	path := writeTestWav(t, 8000, 2.0)
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	before := src.Filepos()
	if !src.Seek(1.0, 0) {
		t.Fatal("Seek failed")
	}
	after := src.Filepos()
	if after <= before {
		t.Errorf("Filepos after seek (%d) should exceed before (%d)", after, before)
	}
}

func TestSeekByFactor(t *testing.T) {
	path := writeTestWav(t, 8000, 2.0)
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if !src.Seek(0.5, media.SeekFactorFlag) {
		t.Fatal("Seek failed")
	}
	dec := src.NewDecoder()
	if err := dec.Work(); err != nil {
		t.Fatalf("Work: %v", err)
	}
	frame, _ := dec.GetFrame()
	if frame.PTS < 0.9 || frame.PTS > 1.1 {
		t.Errorf("PTS after 0.5-factor seek into a 2s file = %v, want ~1.0", frame.PTS)
	}
}

func TestOpenRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notwav.txt")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected Open to reject a non-wav file")
	}
}
