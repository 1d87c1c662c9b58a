package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tvx"
	"tvx/geom"
	"tvx/screen"
)

const settings = `
type: border
title: Settings
child:
  type: dock
  children:
    - type: text
      name: status
      text: ready
      dock: bottom
      style: {fg: yellow, bold: true}
    - type: vstack
      children:
        - {type: label, text: "~W~rap:", for: wrap}
        - {type: checkbox, name: wrap, text: Wrap lines, checked: true}
        - {type: button, name: ok, text: "~O~K", halign: center, margin: [1, 0]}
`

func mustParse(t *testing.T, l *Loader, src string) *Document {
	t.Helper()
	doc, err := l.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestLoadTree(t *testing.T) {
	doc := mustParse(t, New(), settings)
	border, ok := doc.Root.(*tvx.Border)
	if !ok {
		t.Fatalf("root is %T", doc.Root)
	}
	if _, ok := border.Child().(*tvx.DockPanel); !ok {
		t.Errorf("border child is %T", border.Child())
	}

	var names []string
	for name := range doc.Names {
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"ok", "status", "wrap"}, names, cmpSorted); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	status, err := Find[*tvx.StaticText](doc, "status")
	if err != nil {
		t.Fatal(err)
	}
	if st := status.GetStyle(); st.FG != screen.Yellow || !st.Attr.Has(screen.AttrBold) {
		t.Errorf("status style = %+v", st)
	}
	if l, ok := status.Layout().(tvx.DockLayout); !ok || l.Dock != tvx.DockBottom {
		t.Errorf("status layout = %#v", status.Layout())
	}
	if status.Name() != "status" {
		t.Errorf("view name = %q", status.Name())
	}

	wrap, err := Find[*tvx.CheckBox](doc, "wrap")
	if err != nil {
		t.Fatal(err)
	}
	if !wrap.Checked() {
		t.Errorf("checkbox not checked")
	}

	ok2, err := Find[*tvx.Button](doc, "ok")
	if err != nil {
		t.Fatal(err)
	}
	if ok2.HAlign() != tvx.HCenter || ok2.Margin() != (geom.Thickness{Left: 1, Right: 1}) {
		t.Errorf("button align %v margin %v", ok2.HAlign(), ok2.Margin())
	}
}

var cmpSorted = cmpopts.SortSlices(func(a, b string) bool { return a < b })

func TestLoadLabelLink(t *testing.T) {
	doc := mustParse(t, New(), settings)
	wrap := doc.Lookup("wrap")
	var label *tvx.Label
	stack := doc.Root.(*tvx.Border).Child().(*tvx.DockPanel).Children().Values()
	for v := range stack {
		if s, ok := v.(*tvx.StackPanel); ok {
			for c := range s.Children().Values() {
				if l, ok := c.(*tvx.Label); ok {
					label = l
				}
			}
		}
	}
	if label == nil {
		t.Fatal("label not found")
	}
	if label.Link() != wrap {
		t.Errorf("label linked to %v, want the checkbox", label.Link())
	}
}

func TestLoadRenders(t *testing.T) {
	doc := mustParse(t, New(), `
type: border
title: Hi
child: {type: text, text: abc}
`)
	d := screen.NewMemDriver(7, 3)
	s, err := screen.New(d)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	app := tvx.NewApp(s)
	app.SetRoot(doc.Root)
	if _, err := app.Step(false); err != nil {
		t.Fatal(err)
	}
	want := []string{"┌Hi───┐", "│abc  │", "└─────┘"}
	for y, line := range want {
		if got := d.Line(y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
}

func TestLoadCanvasAndTrim(t *testing.T) {
	l := New()
	doc := mustParse(t, l, `
type: canvas
children:
  - {type: text, name: a, text: abcdef, at: [2, 1], trim: true}
  - {type: spacer, name: gap, min_size: [3]}
`)
	a := doc.Lookup("a").(*tvx.StaticText)
	if got := a.Layout(); got != (tvx.CanvasLayout{TL: geom.Point{X: 2, Y: 1}}) {
		t.Errorf("layout = %#v", got)
	}
	if a.Marker() != l.Marker {
		t.Errorf("text not trimmed with the loader's marker")
	}
	if got := doc.Lookup("gap").Base().MinSize(); got != (geom.Vector{X: 3, Y: 3}) {
		t.Errorf("min size = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown type", "type: slider", `line 1: unknown type "slider"`},
		{"unknown field", "type: text\ncolour: red", `parse: line 2: unknown field "colour"`},
		{"bad margin", "type: text\nmargin: [1, 2, 3]", "margin needs 1, 2 or 4 values"},
		{"bad align", "type: text\nhalign: middle", `unknown halign "middle"`},
		{"dock and at", "type: text\ndock: top\nat: [1, 1]", "dock and at are exclusive"},
		{"bad color", "type: text\nstyle: {fg: mauve}", `unknown color "mauve"`},
		{"leaf with child", "type: text\nchild: {type: text}", "takes no children"},
		{"button without text", "type: button", "text is required"},
		{"duplicate name", "type: vstack\nchildren:\n  - {type: text, name: a}\n  - {type: text, name: a}", `line 4: name "a" used twice`},
		{"nested line", "type: vstack\nchildren:\n  - type: text\n  - type: nope", `line 4: unknown type "nope"`},
		{"dangling label", "type: label\nfor: missing", `unknown view "missing"`},
		{"bad theme", "type: checkbox\ntheme: neon", `unknown theme "neon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	l := New()
	defer func() {
		if recover() == nil {
			t.Errorf("registering text twice did not panic")
		}
	}()
	l.Register("meter", func(b *Builder, n *Node) (tvx.View, error) {
		return tvx.Text("meter:" + n.Text), nil
	})
	doc := mustParse(t, l, "type: meter\ntext: 5")
	if got := doc.Root.(*tvx.StaticText).GetText(); got != "meter:5" {
		t.Errorf("custom factory built %q", got)
	}
	l.Register("text", buildText)
}

func TestFind(t *testing.T) {
	doc := mustParse(t, New(), "type: text\nname: t")
	if _, err := Find[*tvx.Button](doc, "t"); err == nil {
		t.Errorf("wrong type not reported")
	}
	if _, err := Find[*tvx.StaticText](doc, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	if err := os.WriteFile(path, []byte("type: text\ntext: x\nmargin: [9, 9, 9]"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New().LoadFile(path)
	if err == nil || !strings.HasPrefix(err.Error(), path+": line 1") {
		t.Errorf("err = %v", err)
	}
	if _, err := New().LoadFile(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}
