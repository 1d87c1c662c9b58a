// Package loader builds view trees from YAML documents.
//
// A document is a tree of nodes; each node names its view type and sets
// properties on it:
//
//	type: border
//	title: Options
//	child:
//	  type: vstack
//	  children:
//	    - {type: checkbox, name: wrap, text: "~W~rap lines"}
//	    - {type: button, name: ok, text: "~O~K", halign: center}
//
// Named nodes can be looked up after loading.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"tvx"
	"tvx/geom"
	"tvx/internal/logutil"
	"tvx/screen"
)

var logger = logutil.GetLogger("[loader] ")

// Node is one element of a document.
type Node struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`

	Text    string     `yaml:"text"`
	Title   string     `yaml:"title"`
	Double  bool       `yaml:"double"`
	Checked bool       `yaml:"checked"`
	Trim    bool       `yaml:"trim"`
	Theme   string     `yaml:"theme"`
	Style   *StyleSpec `yaml:"style"`

	Margin  []int16 `yaml:"margin"`
	MinSize []int16 `yaml:"min_size"`
	MaxSize []int16 `yaml:"max_size"`
	HAlign  string  `yaml:"halign"`
	VAlign  string  `yaml:"valign"`
	Dock    string  `yaml:"dock"`
	At      []int16 `yaml:"at"`
	For     string  `yaml:"for"`

	Child    *Node   `yaml:"child"`
	Header   *Node   `yaml:"header"`
	Children []*Node `yaml:"children"`

	// Line is the document line the node starts on.
	Line int `yaml:"-"`
}

// nodeKeys holds the yaml keys of Node. Node.Decode does not inherit the
// decoder's KnownFields setting, so UnmarshalYAML checks keys itself.
var nodeKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeFor[Node]()
	for i := range t.NumField() {
		if k, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ","); k != "" && k != "-" {
			keys[k] = true
		}
	}
	return keys
}()

// UnmarshalYAML records the node's line and rejects unknown keys.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	for i := 0; i < len(value.Content); i += 2 {
		if k := value.Content[i]; !nodeKeys[k.Value] {
			return fmt.Errorf("line %d: unknown field %q", k.Line, k.Value)
		}
	}
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.Line = value.Line
	return nil
}

// StyleSpec is the YAML form of a screen.Style. Colors take the names
// understood by screen.ParseColor.
type StyleSpec struct {
	FG            string `yaml:"fg"`
	BG            string `yaml:"bg"`
	Bold          bool   `yaml:"bold"`
	Dim           bool   `yaml:"dim"`
	Italic        bool   `yaml:"italic"`
	Underline     bool   `yaml:"underline"`
	Inverse       bool   `yaml:"inverse"`
	Strikethrough bool   `yaml:"strikethrough"`
}

// Resolve converts s to a screen.Style; a nil s is the default style.
func (s *StyleSpec) Resolve() (screen.Style, error) {
	st := screen.DefaultStyle()
	if s == nil {
		return st, nil
	}
	if s.FG != "" {
		c, ok := screen.ParseColor(s.FG)
		if !ok {
			return st, fmt.Errorf("unknown color %q", s.FG)
		}
		st = st.Foreground(c)
	}
	if s.BG != "" {
		c, ok := screen.ParseColor(s.BG)
		if !ok {
			return st, fmt.Errorf("unknown color %q", s.BG)
		}
		st = st.Background(c)
	}
	for _, a := range []struct {
		on   bool
		attr screen.Attribute
	}{
		{s.Bold, screen.AttrBold},
		{s.Dim, screen.AttrDim},
		{s.Italic, screen.AttrItalic},
		{s.Underline, screen.AttrUnderline},
		{s.Inverse, screen.AttrInverse},
		{s.Strikethrough, screen.AttrStrikethrough},
	} {
		if a.on {
			st.Attr = st.Attr.With(a.attr)
		}
	}
	return st, nil
}

// Factory builds the view for a node. Children are built by calling
// b.Build.
type Factory func(b *Builder, n *Node) (tvx.View, error)

// Loader maps node types to factories.
type Loader struct {
	factories map[string]Factory

	// Marker is given to text nodes with trim set.
	Marker *tvx.TrimmingMarker
	// Theme is used by widgets without a theme of their own.
	Theme tvx.Theme
}

// New returns a loader that knows the built-in view types: text, label,
// button, checkbox, spacer, border, background, vstack, hstack, dock,
// canvas, pile and adorners.
func New() *Loader {
	l := &Loader{
		factories: make(map[string]Factory),
		Marker:    tvx.NewTrimmingMarker("…"),
		Theme:     tvx.DefaultTheme,
	}
	registerBuiltins(l)
	return l
}

// Register adds a node type. Registering a type twice panics.
func (l *Loader) Register(typ string, f Factory) {
	if _, ok := l.factories[typ]; ok {
		panic(fmt.Sprintf("loader: type %q registered twice", typ))
	}
	l.factories[typ] = f
}

// Document is a loaded view tree.
type Document struct {
	Root  tvx.View
	Names map[string]tvx.View
}

// Lookup returns the view registered under name, or nil.
func (d *Document) Lookup(name string) tvx.View {
	return d.Names[name]
}

// ErrNotFound is returned by Find for unknown names.
var ErrNotFound = errors.New("no view with that name")

// Find returns the view named name as a T.
func Find[T tvx.View](d *Document, name string) (T, error) {
	var zero T
	v, ok := d.Names[name]
	if !ok {
		return zero, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%q is a %T, not a %T", name, v, zero)
	}
	return t, nil
}

// Parse builds a document from YAML data.
func (l *Loader) Parse(data []byte) (*Document, error) {
	return l.Load(bytes.NewReader(data))
}

// LoadFile builds a document from a file.
func (l *Loader) LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	doc, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load builds a document from YAML read from r.
func (l *Loader) Load(r io.Reader) (*Document, error) {
	var root Node
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	b := &Builder{loader: l, doc: &Document{Names: make(map[string]tvx.View)}}
	v, err := b.Build(&root)
	if err != nil {
		return nil, err
	}
	if err := b.link(); err != nil {
		return nil, err
	}
	b.doc.Root = v
	logger.Printf("loaded %d named views", len(b.doc.Names))
	return b.doc, nil
}

// Builder carries the state of one Load.
type Builder struct {
	loader *Loader
	doc    *Document
	links  []pendingLink
}

type pendingLink struct {
	label *tvx.Label
	to    string
	line  int
}

// Loader returns the loader driving the build.
func (b *Builder) Loader() *Loader {
	return b.loader
}

// Build creates the view for n and applies the properties every view
// shares.
func (b *Builder) Build(n *Node) (tvx.View, error) {
	if n == nil {
		return nil, nil
	}
	f, ok := b.loader.factories[n.Type]
	if !ok {
		return nil, fmt.Errorf("line %d: unknown type %q", n.Line, n.Type)
	}
	v, err := f(b, n)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", n.Line, n.Type, err)
	}
	if err := applyCommon(v.Base(), n); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	if n.Name != "" {
		if _, dup := b.doc.Names[n.Name]; dup {
			return nil, fmt.Errorf("line %d: name %q used twice", n.Line, n.Name)
		}
		b.doc.Names[n.Name] = v
		v.Base().SetName(n.Name)
	}
	return v, nil
}

// BuildAll builds a list of nodes.
func (b *Builder) BuildAll(ns []*Node) ([]tvx.View, error) {
	out := make([]tvx.View, 0, len(ns))
	for _, n := range ns {
		v, err := b.Build(n)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (b *Builder) link() error {
	for _, p := range b.links {
		v, ok := b.doc.Names[p.to]
		if !ok {
			return fmt.Errorf("line %d: label for unknown view %q", p.line, p.to)
		}
		p.label.For(v)
	}
	return nil
}

func pair(vals []int16, what string) (geom.Vector, error) {
	switch len(vals) {
	case 1:
		return geom.Vector{X: vals[0], Y: vals[0]}, nil
	case 2:
		return geom.Vector{X: vals[0], Y: vals[1]}, nil
	}
	return geom.Vector{}, fmt.Errorf("%s needs 1 or 2 values, got %d", what, len(vals))
}

func thickness(vals []int16) (geom.Thickness, error) {
	switch len(vals) {
	case 1:
		return geom.Uniform(vals[0]), nil
	case 2:
		return geom.Thickness{Left: vals[0], Top: vals[1], Right: vals[0], Bottom: vals[1]}, nil
	case 4:
		return geom.Thickness{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
	}
	return geom.Thickness{}, fmt.Errorf("margin needs 1, 2 or 4 values, got %d", len(vals))
}

var hAligns = map[string]tvx.HAlign{
	"stretch": tvx.HStretch,
	"left":    tvx.HLeft,
	"center":  tvx.HCenter,
	"right":   tvx.HRight,
}

var vAligns = map[string]tvx.VAlign{
	"stretch": tvx.VStretch,
	"top":     tvx.VTop,
	"center":  tvx.VCenter,
	"bottom":  tvx.VBottom,
}

var docks = map[string]tvx.Dock{
	"left":   tvx.DockLeft,
	"top":    tvx.DockTop,
	"right":  tvx.DockRight,
	"bottom": tvx.DockBottom,
}

func applyCommon(b *tvx.ViewBase, n *Node) error {
	if n.Margin != nil {
		m, err := thickness(n.Margin)
		if err != nil {
			return err
		}
		b.SetMargin(m)
	}
	if n.MinSize != nil {
		v, err := pair(n.MinSize, "min_size")
		if err != nil {
			return err
		}
		b.SetMinSize(v)
	}
	if n.MaxSize != nil {
		v, err := pair(n.MaxSize, "max_size")
		if err != nil {
			return err
		}
		b.SetMaxSize(v)
	}
	if n.HAlign != "" {
		a, ok := hAligns[n.HAlign]
		if !ok {
			return fmt.Errorf("unknown halign %q", n.HAlign)
		}
		b.SetHAlign(a)
	}
	if n.VAlign != "" {
		a, ok := vAligns[n.VAlign]
		if !ok {
			return fmt.Errorf("unknown valign %q", n.VAlign)
		}
		b.SetVAlign(a)
	}
	if n.Dock != "" && n.At != nil {
		return errors.New("dock and at are exclusive")
	}
	if n.Dock != "" {
		d, ok := docks[n.Dock]
		if !ok {
			return fmt.Errorf("unknown dock %q", n.Dock)
		}
		b.SetLayout(tvx.DockLayout{Dock: d})
	}
	if n.At != nil {
		p, err := pair(n.At, "at")
		if err != nil {
			return err
		}
		b.SetLayout(tvx.CanvasLayout{TL: geom.Point(p)})
	}
	return nil
}
