package tvx

import (
	"testing"

	"tvx/geom"
	"tvx/screen"
)

func newTestSurface(t *testing.T, cols, rows int) *screen.Screen {
	t.Helper()
	s, err := screen.New(screen.NewMemDriver(cols, rows))
	if err != nil {
		t.Fatalf("screen.New: %v", err)
	}
	return s
}

func lines(s *screen.Screen) []string {
	var out []string
	for y := 0; y < int(s.Size().Y); y++ {
		out = append(out, s.Line(y))
	}
	return out
}

func TestRenderPortText(t *testing.T) {
	tests := []struct {
		name  string
		clip  geom.Rect
		dirty geom.Rect
		at    geom.Point
		text  string
		want  string
		inval geom.Rect
	}{
		{"inside", geom.NewRect(0, 0, 10, 1), geom.NewRect(0, 0, 10, 1), geom.Point{X: 1}, "abc", " abc      ", geom.NewRect(0, 0, 10, 1)},
		{"clipped by bounds", geom.NewRect(2, 0, 3, 1), geom.NewRect(0, 0, 10, 1), geom.Point{X: -1}, "abcdef", "  bcd     ", geom.NewRect(2, 0, 3, 1)},
		{"skipped outside the dirty rect", geom.NewRect(0, 0, 10, 1), geom.NewRect(4, 0, 2, 1), geom.Point{}, "abcdefgh", "    ef    ", geom.NewRect(4, 0, 2, 1)},
		{"past the right edge", geom.NewRect(0, 0, 5, 1), geom.NewRect(0, 0, 10, 1), geom.Point{X: 5}, "abc", "          ", geom.NewRect(0, 0, 5, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface(t, 10, 1)
			rp := NewRenderPort(s, tt.dirty).sub(tt.clip)
			rp.Text(tt.at, screen.DefaultStyle(), tt.text)
			if got := s.Line(0); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if rp.invalidated != tt.inval {
				t.Errorf("invalidated = %v, want %v", rp.invalidated, tt.inval)
			}
		})
	}
}

func TestRenderPortInvalidatedGrows(t *testing.T) {
	s := newTestSurface(t, 10, 2)
	rp := NewRenderPort(s, geom.NewRect(0, 0, 2, 1))
	// the wide glyph starts inside the dirty rect and is drawn whole
	rp.Text(geom.Point{X: 1}, screen.DefaultStyle(), "漢")
	if want := geom.NewRect(0, 0, 3, 1); rp.invalidated != want {
		t.Errorf("invalidated = %v, want %v", rp.invalidated, want)
	}
}

func TestRenderPortSubOffsets(t *testing.T) {
	s := newTestSurface(t, 10, 3)
	rp := NewRenderPort(s, s.Bounds())
	sub := rp.sub(geom.NewRect(3, 1, 4, 1))
	if want := geom.NewRect(0, 0, 4, 1); sub.Bounds() != want {
		t.Errorf("bounds = %v, want %v", sub.Bounds(), want)
	}
	sub.Text(geom.Point{}, screen.DefaultStyle(), "abcdef")
	if got, want := s.Line(1), "   abcd   "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := s.Line(0), "          "; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
}

func TestRenderPortCursor(t *testing.T) {
	t.Run("outside bounds is ignored", func(t *testing.T) {
		s := newTestSurface(t, 10, 1)
		rp := NewRenderPort(s, s.Bounds()).sub(geom.NewRect(0, 0, 3, 1))
		rp.Cursor(geom.Point{X: 5})
		if _, ok := rp.CursorPos(); ok {
			t.Errorf("cursor accepted outside the port")
		}
	})

	t.Run("overwritten cursor is cancelled", func(t *testing.T) {
		s := newTestSurface(t, 10, 1)
		rp := NewRenderPort(s, s.Bounds())
		rp.Cursor(geom.Point{X: 2})
		rp.Text(geom.Point{X: 5}, screen.DefaultStyle(), "x")
		if p, ok := rp.CursorPos(); !ok || p != (geom.Point{X: 2}) {
			t.Errorf("cursor = %v, %v after unrelated text", p, ok)
		}
		rp.Text(geom.Point{X: 1}, screen.DefaultStyle(), "abc")
		if _, ok := rp.CursorPos(); ok {
			t.Errorf("cursor survived text written over it")
		}
	})

	t.Run("child cursor reaches the parent", func(t *testing.T) {
		s := newTestSurface(t, 10, 2)
		rp := NewRenderPort(s, s.Bounds())
		sub := rp.sub(geom.NewRect(4, 1, 3, 1))
		sub.Cursor(geom.Point{X: 1})
		rp.join(sub)
		if p, ok := rp.CursorPos(); !ok || p != (geom.Point{X: 5, Y: 1}) {
			t.Errorf("cursor = %v, %v", p, ok)
		}
	})
}

func TestRenderPortFill(t *testing.T) {
	s := newTestSurface(t, 6, 3)
	rp := NewRenderPort(s, geom.NewRect(0, 1, 6, 2)).sub(geom.NewRect(1, 0, 3, 3))
	var pts []geom.Point
	rp.Fill(func(rp *RenderPort, p geom.Point) {
		pts = append(pts, p)
		rp.Text(p, screen.DefaultStyle(), "#")
	})
	if len(pts) != 6 || pts[0] != (geom.Point{X: 0, Y: 1}) {
		t.Errorf("visited %v", pts)
	}
	want := []string{"      ", " ###  ", " ###  "}
	for y, line := range lines(s) {
		if line != want[y] {
			t.Errorf("row %d = %q, want %q", y, line, want[y])
		}
	}
}

func TestRenderPortFillBg(t *testing.T) {
	s := newTestSurface(t, 4, 2)
	red := screen.DefaultStyle().Background(screen.Red)
	NewRenderPort(s, s.Bounds()).FillBg(red)
	for p := range s.Bounds().Points {
		if c := s.Cell(p); c.Text != " " || c.Style != red {
			t.Errorf("cell %v = %+v", p, c)
		}
	}
}

func TestRenderPortLabel(t *testing.T) {
	s := newTestSurface(t, 12, 1)
	normal := screen.DefaultStyle()
	hot := normal.Foreground(screen.Yellow)
	NewRenderPort(s, s.Bounds()).Label(geom.Point{}, normal, hot, "~O~pen ~~x")
	if got, want := s.Line(0), "Open ~x     "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	styles := []screen.Style{hot, normal, normal, normal, normal, normal, normal}
	for x, want := range styles {
		if got := s.Cell(geom.Point{X: int16(x)}).Style; got != want {
			t.Errorf("cell %d style = %+v, want %+v", x, got, want)
		}
	}
}

func TestLabelHelpers(t *testing.T) {
	tests := []struct {
		text   string
		width  int
		hotkey rune
	}{
		{"plain", 5, 0},
		{"~S~ave", 4, 'S'},
		{"E~x~it", 4, 'x'},
		{"a~~b", 3, 0},
		{"~漢~字", 4, '漢'},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := LabelWidth(tt.text); got != tt.width {
				t.Errorf("width = %d, want %d", got, tt.width)
			}
			if got := LabelHotkey(tt.text); got != tt.hotkey {
				t.Errorf("hotkey = %q, want %q", got, tt.hotkey)
			}
		})
	}
}

func TestRenderPortBox(t *testing.T) {
	tests := []struct {
		name   string
		double bool
		want   []string
	}{
		{"single", false, []string{"┌──┐", "│  │", "└──┘"}},
		{"double", true, []string{"╔══╗", "║  ║", "╚══╝"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface(t, 4, 3)
			NewRenderPort(s, s.Bounds()).Box(geom.NewRect(0, 0, 4, 3), tt.double, screen.DefaultStyle())
			for y, line := range lines(s) {
				if line != tt.want[y] {
					t.Errorf("row %d = %q, want %q", y, line, tt.want[y])
				}
			}
		})
	}
}

func TestRenderRootSkipsCleanChildren(t *testing.T) {
	s := newTestSurface(t, 10, 4)
	a, b := newProbe(1, 2), newProbe(1, 2)
	root := VStack(a, b)
	layout(root, 10, 4)
	RenderRoot(s, root, geom.NewRect(0, 2, 10, 2))
	if a.renders != 0 || b.renders != 1 {
		t.Errorf("renders = %d, %d; want 0, 1", a.renders, b.renders)
	}
}
