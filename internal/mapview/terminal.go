package mapview

import (
	"fmt"
	"io"
	"sync"

	"github.com/rileysklar/BookNook/pkg/geo"
)

// TerminalSurface prints marker lifecycle events to a writer. It is what
// `booknookctl watch` renders to; clicks on a terminal do not exist, so
// the onClick callback is held but only fired via Tap (used in tests and
// the interactive prompt).
type TerminalSurface struct {
	mu  sync.Mutex
	out io.Writer
	seq int
}

func NewTerminalSurface(out io.Writer) *TerminalSurface {
	return &TerminalSurface{out: out}
}

type terminalMarker struct {
	surface *TerminalSurface
	id      int
	label   string
	coords  geo.Point
	onClick func()
}

func (s *TerminalSurface) AddMarker(p geo.Point, label string, onClick func()) (Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	m := &terminalMarker{surface: s, id: s.seq, label: label, coords: p, onClick: onClick}
	fmt.Fprintf(s.out, "+ marker #%d %s %s\n", m.id, p.String(), label)
	return m, nil
}

func (m *terminalMarker) Remove() {
	s := m.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "- marker #%d %s %s\n", m.id, m.coords.String(), m.label)
}

// Tap simulates a click on the marker.
func (m *terminalMarker) Tap() {
	if m.onClick != nil {
		m.onClick()
	}
}
