// Package grapheme measures text the way a terminal displays it: as a
// sequence of user-perceived characters (grapheme clusters), each occupying
// zero, one or two columns.
package grapheme

import (
	"iter"

	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster and its display width in columns.
type Cluster struct {
	Text  string
	Width int
}

// All iterates over the grapheme clusters of s. Combining marks are merged
// into the cluster of the preceding base character.
func All(s string) iter.Seq[Cluster] {
	return func(yield func(Cluster) bool) {
		state := -1
		for len(s) > 0 {
			var c string
			var w int
			c, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
			if !yield(Cluster{Text: c, Width: w}) {
				return
			}
		}
	}
}

// Clusters returns the grapheme clusters of s.
func Clusters(s string) []Cluster {
	var out []Cluster
	for c := range All(s) {
		out = append(out, c)
	}
	return out
}

// Width returns the number of columns s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate returns the longest prefix of s that fits in width columns. A wide
// cluster that would straddle the limit is dropped whole.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	used, end := 0, 0
	for c := range All(s) {
		if used+c.Width > width {
			break
		}
		used += c.Width
		end += len(c.Text)
	}
	return s[:end]
}

// Trim fits s into width columns. When s is too wide it is cut and marker is
// appended; the boolean result reports whether trimming happened.
func Trim(s string, width int, marker string) (string, bool) {
	if Width(s) <= width {
		return s, false
	}
	mw := Width(marker)
	if mw >= width {
		return Truncate(marker, width), true
	}
	return Truncate(s, width-mw) + marker, true
}
