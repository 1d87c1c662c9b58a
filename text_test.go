package tvx

import (
	"runtime"
	"testing"

	"tvx/geom"
	"tvx/screen"
)

func TestStaticTextMeasure(t *testing.T) {
	tests := []struct {
		name string
		text string
		want geom.Vector
	}{
		{"empty", "", geom.Vector{}},
		{"one line", "hello", geom.Vector{X: 5, Y: 1}},
		{"lines", "a\nlonger\nb", geom.Vector{X: 6, Y: 3}},
		{"wide", "漢字", geom.Vector{X: 4, Y: 1}},
		{"combining mark", "e\u0301", geom.Vector{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.text).Measure(Unconstrained, Unconstrained); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStaticTextRender(t *testing.T) {
	s := newTestSurface(t, 8, 3)
	txt := Text("one\ntwo two two\nthree")
	layout(txt, 8, 2)
	RenderRoot(s, txt, s.Bounds())
	want := []string{"one     ", "two two ", "        "}
	for y, line := range lines(s) {
		if line != want[y] {
			t.Errorf("row %d = %q, want %q", y, line, want[y])
		}
	}
}

func TestStaticTextTrimming(t *testing.T) {
	m := NewTrimmingMarker("…")
	txt := Text("abcdefghij").Trim(m)
	if m.Listeners() != 1 {
		t.Fatalf("listeners = %d, want 1", m.Listeners())
	}
	if got := txt.Measure(6, 1); got != (geom.Vector{X: 6, Y: 1}) {
		t.Errorf("trimming text desired %v", got)
	}

	s := newTestSurface(t, 6, 1)
	layout(txt, 6, 1)
	RenderRoot(s, txt, s.Bounds())
	if got, want := s.Line(0), "abcde…"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	m.SetText(">>")
	if txt.IsMeasureValid() {
		t.Errorf("marker change did not invalidate the text")
	}
	layout(txt, 6, 1)
	RenderRoot(s, txt, s.Bounds())
	if got, want := s.Line(0), "abcd>>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	txt.Trim(nil)
	if m.Listeners() != 0 {
		t.Errorf("listeners = %d after Trim(nil)", m.Listeners())
	}
}

func TestTrimmingMarkerUnlistenTwice(t *testing.T) {
	m := NewTrimmingMarker("…")
	txt := Text("x").Trim(m)
	h := txt.markerHandle
	txt.Trim(nil)
	mustPanic(t, "second unlisten", func() { m.unlisten(h) })
}

func TestTrimmingMarkerHandleReuse(t *testing.T) {
	m := NewTrimmingMarker("…")
	a, b, c := Text("a").Trim(m), Text("b").Trim(m), Text("c").Trim(m)
	freed := b.markerHandle
	b.Trim(nil)
	d := Text("d").Trim(m)
	if d.markerHandle != freed {
		t.Errorf("handle = %d, want reused %d", d.markerHandle, freed)
	}
	for h, l := range m.listeners.All() {
		if l.handle != h {
			t.Errorf("listener stored handle %d under %d", l.handle, h)
		}
	}
	runtime.KeepAlive(a)
	runtime.KeepAlive(c)
}

func TestTrimmingMarkerDropsCollectedViews(t *testing.T) {
	m := NewTrimmingMarker("…")
	func() {
		Text("gone").Trim(m)
	}()
	kept := Text("kept").Trim(m)
	runtime.GC()
	m.SetText("~")
	if m.Listeners() != 1 {
		t.Errorf("listeners = %d, want 1", m.Listeners())
	}
	runtime.KeepAlive(kept)
}

func TestStaticTextFluent(t *testing.T) {
	var ref *StaticText
	txt := Text("x").Bold().Underline().Fg(screen.Red).Bg(screen.Blue).Ref(&ref)
	if ref != txt {
		t.Errorf("Ref did not store the view")
	}
	st := txt.GetStyle()
	if !st.Attr.Has(screen.AttrBold) || !st.Attr.Has(screen.AttrUnderline) || st.FG != screen.Red || st.BG != screen.Blue {
		t.Errorf("style = %+v", st)
	}
	if got := Textf("%d-%s", 4, "x").GetText(); got != "4-x" {
		t.Errorf("Textf = %q", got)
	}
}

func TestStaticTextSetTextRemeasures(t *testing.T) {
	txt := Text("ab")
	txt.Measure(Unconstrained, Unconstrained)
	txt.SetText("abcd")
	if got := txt.Measure(Unconstrained, Unconstrained); got != (geom.Vector{X: 4, Y: 1}) {
		t.Errorf("got %v", got)
	}
}
