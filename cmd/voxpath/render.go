package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/movement"
)

// Cell glyphs of the layer view.
const (
	glyphOpen    = '.'
	glyphBlocked = '#'
	glyphStart   = 'S'
	glyphGoal    = 'G'
	glyphStep    = '*'
	glyphShort   = '+' // a step the budget does not cover
)

// palette holds styles bound to one output renderer, so colours are dropped
// when the output is not a terminal.
type palette struct {
	title, label, value lipgloss.Style
	glyph               map[rune]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	return palette{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label: r.NewStyle().Foreground(lipgloss.Color("240")),
		value: r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		glyph: map[rune]lipgloss.Style{
			glyphOpen:    r.NewStyle().Foreground(lipgloss.Color("240")),
			glyphBlocked: r.NewStyle().Foreground(lipgloss.Color("red")),
			glyphStart:   r.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true),
			glyphGoal:    r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
			glyphStep:    r.NewStyle().Foreground(lipgloss.Color("green")),
			glyphShort:   r.NewStyle().Foreground(lipgloss.Color("yellow")),
		},
	}
}

// metric formats "label: value".
func (p palette) metric(label string, value any) string {
	return p.label.Render(label+":") + " " + p.value.Render(fmt.Sprint(value))
}

// renderLayers draws every layer of g from the top down, x across and z
// down, overlaying start, goal and the plan's steps.
func renderLayers(p palette, g *grid.Grid, start, goal *grid.Cell, plan movement.Plan) string {
	marks := make(map[*grid.Cell]rune, len(plan.Affordable)+len(plan.Unaffordable)+2)
	for _, s := range plan.Affordable {
		marks[s.Cell] = glyphStep
	}
	for _, s := range plan.Unaffordable {
		marks[s.Cell] = glyphShort
	}
	marks[goal] = glyphGoal
	marks[start] = glyphStart

	sx, sy, sz := g.Dimensions()
	var b strings.Builder
	for y := sy - 1; y >= 0; y-- {
		b.WriteString(p.title.Render(fmt.Sprintf("layer %d", y)))
		b.WriteByte('\n')
		for z := 0; z < sz; z++ {
			for x := 0; x < sx; x++ {
				c := g.CellAt(x, y, z)
				glyph, ok := marks[c]
				if !ok {
					glyph = glyphOpen
					if !c.Walkable() {
						glyph = glyphBlocked
					}
				}
				b.WriteString(p.glyph[glyph].Render(string(glyph)))
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}
