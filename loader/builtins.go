package loader

import (
	"errors"
	"fmt"

	"tvx"
)

func registerBuiltins(l *Loader) {
	l.Register("text", buildText)
	l.Register("label", buildLabel)
	l.Register("button", buildButton)
	l.Register("checkbox", buildCheckBox)
	l.Register("spacer", buildSpacer)
	l.Register("border", buildBorder)
	l.Register("background", buildBackground)
	l.Register("vstack", panelOf(func() tvx.View { return tvx.VStack() }))
	l.Register("hstack", panelOf(func() tvx.View { return tvx.HStack() }))
	l.Register("dock", panelOf(func() tvx.View { return tvx.NewDockPanel() }))
	l.Register("canvas", panelOf(func() tvx.View { return tvx.NewCanvas() }))
	l.Register("pile", panelOf(func() tvx.View { return tvx.NewPilePanel() }))
	l.Register("adorners", panelOf(func() tvx.View { return tvx.NewAdornersPanel() }))
}

// leaf rejects child nodes on types that cannot hold them.
func leaf(n *Node) error {
	if n.Child != nil || n.Header != nil || len(n.Children) > 0 {
		return errors.New("takes no children")
	}
	return nil
}

func theme(b *Builder, n *Node) (tvx.Theme, error) {
	if n.Theme == "" {
		return b.Loader().Theme, nil
	}
	th, ok := tvx.ThemeByName(n.Theme)
	if !ok {
		return th, fmt.Errorf("unknown theme %q", n.Theme)
	}
	return th, nil
}

func buildText(b *Builder, n *Node) (tvx.View, error) {
	if err := leaf(n); err != nil {
		return nil, err
	}
	st, err := n.Style.Resolve()
	if err != nil {
		return nil, err
	}
	t := tvx.Text(n.Text).Style(st)
	if n.Trim {
		t.Trim(b.Loader().Marker)
	}
	return t, nil
}

func buildLabel(b *Builder, n *Node) (tvx.View, error) {
	if err := leaf(n); err != nil {
		return nil, err
	}
	th, err := theme(b, n)
	if err != nil {
		return nil, err
	}
	l := tvx.NewLabel(n.Text).Theme(th)
	if n.For != "" {
		b.links = append(b.links, pendingLink{label: l, to: n.For, line: n.Line})
	}
	return l, nil
}

func buildButton(b *Builder, n *Node) (tvx.View, error) {
	if err := leaf(n); err != nil {
		return nil, err
	}
	if n.Text == "" {
		return nil, errors.New("text is required")
	}
	th, err := theme(b, n)
	if err != nil {
		return nil, err
	}
	return tvx.NewButton(n.Text, nil).Theme(th), nil
}

func buildCheckBox(b *Builder, n *Node) (tvx.View, error) {
	if err := leaf(n); err != nil {
		return nil, err
	}
	th, err := theme(b, n)
	if err != nil {
		return nil, err
	}
	return tvx.NewCheckBox(n.Text).Theme(th).SetChecked(n.Checked), nil
}

func buildSpacer(b *Builder, n *Node) (tvx.View, error) {
	if err := leaf(n); err != nil {
		return nil, err
	}
	return tvx.NewSpacer(), nil
}

func buildBorder(b *Builder, n *Node) (tvx.View, error) {
	if len(n.Children) > 0 {
		return nil, errors.New("has a single child")
	}
	if n.Header != nil && n.Title != "" {
		return nil, errors.New("header and title are exclusive")
	}
	child, err := b.Build(n.Child)
	if err != nil {
		return nil, err
	}
	br := tvx.NewBorder(child)
	if n.Double {
		br.Double()
	}
	if n.Style != nil {
		st, err := n.Style.Resolve()
		if err != nil {
			return nil, err
		}
		br.Style(st)
	}
	if n.Title != "" {
		br.Title(n.Title)
	}
	if n.Header != nil {
		h, err := b.Build(n.Header)
		if err != nil {
			return nil, err
		}
		br.SetHeader(h)
	}
	return br, nil
}

func buildBackground(b *Builder, n *Node) (tvx.View, error) {
	if len(n.Children) > 0 || n.Header != nil {
		return nil, errors.New("has a single child")
	}
	st, err := n.Style.Resolve()
	if err != nil {
		return nil, err
	}
	child, err := b.Build(n.Child)
	if err != nil {
		return nil, err
	}
	return tvx.NewBackground(st, child), nil
}

type container interface {
	tvx.View
	Add(children ...tvx.View)
}

func panelOf(create func() tvx.View) Factory {
	return func(b *Builder, n *Node) (tvx.View, error) {
		if n.Child != nil || n.Header != nil {
			return nil, errors.New("takes children, not child")
		}
		children, err := b.BuildAll(n.Children)
		if err != nil {
			return nil, err
		}
		p := create().(container)
		p.Add(children...)
		return p, nil
	}
}
