package main

import (
	"tvx"
	"tvx/config"
	"tvx/geom"
)

const lorem = "The quick brown fox jumps over the lazy dog while the layout engine measures, arranges and trims this line."

// demo builds the built-in showcase: a settings pane docked left, a
// trimmed text area, and a status line reporting what was pressed.
func demo(cfg config.Config) tvx.View {
	th := cfg.ThemeValue()
	marker := tvx.NewTrimmingMarker(cfg.TrimmingMarker)

	status := tvx.Text("Tab moves focus, Alt+letter activates, Ctrl+C quits").Style(th.Muted)
	body := tvx.Text(lorem + "\n\n" + lorem).Style(th.Base).Trim(marker)

	trim := tvx.NewCheckBox("~T~rim text").Theme(th).SetChecked(true).OnChange(func(on bool) {
		if on {
			body.Trim(marker)
			status.SetText("trimming on")
		} else {
			body.Trim(nil)
			status.SetText("trimming off")
		}
	})
	bold := tvx.NewCheckBox("~B~old").Theme(th).OnChange(func(on bool) {
		if on {
			body.Bold()
		} else {
			body.Style(th.Base)
		}
	})
	swap := tvx.NewButton("Swap", func() {
		if marker.Text() == ">>" {
			marker.SetText(cfg.TrimmingMarker)
		} else {
			marker.SetText(">>")
		}
		status.SetText("marker " + marker.Text())
	}).Theme(th)
	reset := tvx.NewButton("~R~eset", func() {
		trim.SetChecked(true)
		bold.SetChecked(false)
		body.Style(th.Base).Trim(marker)
		marker.SetText(cfg.TrimmingMarker)
		status.SetText("reset")
	}).Theme(th)

	settings := tvx.VStack(
		tvx.HStack(tvx.NewLabel("~M~arker:").Theme(th).For(swap), tvx.FixedSpacer(1, 1), swap),
		trim,
		bold,
		tvx.FixedSpacer(1, 1),
		reset,
	)
	sidebar := tvx.NewBorder(settings).Title("Settings").Style(th.Border)
	sidebar.SetMargin(geom.Thickness{Right: 1})

	logo := tvx.NewCanvas(
		tvx.At(tvx.Text("*").Style(th.Accent), 1, 0),
		tvx.At(tvx.Text("tvx").Style(th.Accent.Bold()), 3, 1),
	)
	logo.SetMinSize(geom.Vector{Y: 2})
	logo.SetMaxSize(geom.Vector{X: tvx.Unconstrained, Y: 2})
	content := tvx.NewDockPanel(
		tvx.Docked(logo, tvx.DockTop),
		tvx.NewBorder(body).Double().Title("Text").Style(th.Border),
	)

	return tvx.NewDockPanel(
		tvx.Docked(status, tvx.DockBottom),
		tvx.Docked(sidebar, tvx.DockLeft),
		content,
	)
}
