package input

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestStreamDecodesKeys(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)
	s.now = func() time.Time { return now }

	feed(s, "w \x1b[D")
	got := s.Read()
	want := Held{Thrust: true, Fire: true, Left: true}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	// Keys expire once the hold window passes without repeats.
	now = now.Add(keyHoldDuration)
	if got := s.Read(); got != (Held{}) {
		t.Errorf("expected no keys after hold window, got %+v", got)
	}
}

func TestStreamJoinsSplitEscapeSequences(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []Held
	}{
		{"arrow split after ESC", []string{"\x1b", "[D"}, []Held{{}, {Left: true}}},
		{"arrow split after bracket", []string{"w\x1b[", "C"}, []Held{{Thrust: true}, {Thrust: true, Right: true}}},
		{"lone ESC pauses one read later", []string{"\x1b", ""}, []Held{{}, {Pause: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			now := time.Unix(100, 0)
			s.now = func() time.Time { return now }
			for i, chunk := range tt.chunks {
				feed(s, chunk)
				if got := s.Read(); got != tt.want[i] {
					t.Errorf("read %d: expected %+v, got %+v", i, tt.want[i], got)
				}
			}
		})
	}
}

func TestStreamReportsClosedReaderAsQuit(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	deadline := time.Now().Add(time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		s.Read()
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatal("stream should notice EOF")
	}
	if !s.Read().Quit {
		t.Error("closed stream should report quit")
	}
}

func TestMapperEdges(t *testing.T) {
	var m Mapper
	frames := []struct {
		held Held
		want []Action
	}{
		{Held{Thrust: true}, []Action{ActionThrustOn}},
		{Held{Thrust: true, Left: true}, []Action{ActionRotateLeft}},
		{Held{Fire: true, Pause: true}, []Action{ActionThrustOff, ActionFire, ActionPause}},
		{Held{Fire: true, Pause: true}, []Action{ActionFire}},
		{Held{Restart: true, Right: true}, []Action{ActionRotateRight, ActionRestart}},
		{Held{}, nil},
	}
	for i, f := range frames {
		got := m.Map(f.held)
		if len(got) == 0 && len(f.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, f.want) {
			t.Errorf("frame %d: expected %v, got %v", i, f.want, got)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionThrustOn.String() != "thrust-on" || Action(99).String() != "unknown" {
		t.Error("unexpected action names")
	}
}

func TestStreamReset(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)
	s.now = func() time.Time { return now }

	feed(s, " w")
	if got := s.Read(); got != (Held{Fire: true, Thrust: true}) {
		t.Fatalf("unexpected keys %+v", got)
	}
	s.Reset()
	if got := s.Read(); got != (Held{}) {
		t.Errorf("reset should release every key, got %+v", got)
	}
}

func TestMapperReset(t *testing.T) {
	var m Mapper
	m.Map(Held{Pause: true})
	m.Reset()
	if got := m.Map(Held{Pause: true}); !reflect.DeepEqual(got, []Action{ActionPause}) {
		t.Errorf("a key held across a reset should count as a new press, got %v", got)
	}
}
