package logging

import "testing"

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, _ ...any) {
	r.lines = append(r.lines, format)
}

func TestProgressLogger_ForwardsToSinkAndBase(t *testing.T) {
	var got []string
	base := &recordingLogger{}
	l := NewProgressLogger(func(s string) { got = append(got, s) }, base)

	l.Printf("wrote %d units", 12)

	if len(got) != 1 || got[0] != "wrote 12 units" {
		t.Fatalf("unexpected sink lines: %v", got)
	}
	if len(base.lines) != 1 {
		t.Fatalf("expected base logger to receive one line, got %d", len(base.lines))
	}
}

func TestProgressLogger_PanickingSinkIsSwallowed(t *testing.T) {
	l := NewProgressLogger(func(string) { panic("ui gone") }, nil)
	l.Printf("still fine")
}

func TestProgressLogger_NilSink(t *testing.T) {
	l := NewProgressLogger(nil, nil)
	l.Printf("nothing to do")
}
