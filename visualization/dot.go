package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/crossway"
)

// DOTGenerator generates Graphviz DOT format representations of the
// intersection's conflict table
type DOTGenerator struct {
	occupancy *crossway.Occupancy
	options   DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowWakeDirections bool
	ShowTurns          bool
	CompactMode        bool   // one undirected edge per conflicting pair
	Layout             string // "circo", "neato", "dot"
	NodeShape          string
	RightTurnColor     string
	StraightColor      string
	LeftTurnColor      string
	OccupiedColor      string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowWakeDirections: true,
		ShowTurns:          true,
		CompactMode:        false,
		Layout:             "circo",
		NodeShape:          "ellipse",
		RightTurnColor:     "lightgreen",
		StraightColor:      "lightblue",
		LeftTurnColor:      "lightyellow",
		OccupiedColor:      "lightcoral",
	}
}

// NewDOTGenerator creates a new DOT generator for the conflict table
func NewDOTGenerator(options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{options: opts}
}

// WithOccupancy highlights the movements occupied in occ
func (g *DOTGenerator) WithOccupancy(occ crossway.Occupancy) *DOTGenerator {
	g.occupancy = &occ
	return g
}

// Generate creates a DOT representation of the conflict table
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	graphType, edgeOp := "digraph", "->"
	if g.options.CompactMode {
		graphType, edgeOp = "graph", "--"
	}

	// DOT header
	dot.WriteString(fmt.Sprintf("%s Intersection {\n", graphType))
	dot.WriteString(fmt.Sprintf("  layout=%s;\n", g.options.Layout))
	dot.WriteString(fmt.Sprintf("  node [shape=%s style=\"filled\"];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateMovements(&dot)

	if err := g.generateConflicts(&dot, edgeOp); err != nil {
		return "", fmt.Errorf("failed to generate conflicts: %w", err)
	}

	// DOT footer
	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateMovements generates one DOT node per movement
func (g *DOTGenerator) generateMovements(dot *strings.Builder) {
	dot.WriteString("  // Movements\n")

	for _, m := range crossway.AllMovements() {
		fillColor := g.turnColor(m.Turn())
		label := m.String()
		if g.options.ShowTurns {
			label += "\\n(" + m.Turn().String() + ")"
		}
		if g.occupancy != nil {
			if n := g.occupancy.Count(m); n > 0 {
				fillColor = g.options.OccupiedColor
				label += fmt.Sprintf("\\n[%d inside]", n)
			}
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [fillcolor=%s label=\"%s\"];\n", m, fillColor, label))
	}
	dot.WriteString("\n")
}

// generateConflicts generates one edge per table entry, from the waiting
// movement to the movement that blocks it
func (g *DOTGenerator) generateConflicts(dot *strings.Builder, edgeOp string) error {
	dot.WriteString("  // Conflicts\n")

	seen := make(map[[2]crossway.Movement]bool)
	for _, candidate := range crossway.AllMovements() {
		groups := crossway.ConflictGroups(candidate)
		if len(groups) == 0 {
			return fmt.Errorf("movement %s has no conflict groups", candidate)
		}
		for priority, group := range groups {
			for _, blocker := range group.Movements {
				if g.options.CompactMode {
					key := [2]crossway.Movement{candidate, blocker}
					if seen[[2]crossway.Movement{blocker, candidate}] {
						continue
					}
					seen[key] = true
					dot.WriteString(fmt.Sprintf("  \"%s\" %s \"%s\";\n", candidate, edgeOp, blocker))
					continue
				}

				attrs := ""
				if g.options.ShowWakeDirections {
					attrs = fmt.Sprintf(" [label=\"%d:%s\"]", priority+1, group.WakeOn.Short())
				}
				dot.WriteString(fmt.Sprintf("  \"%s\" %s \"%s\"%s;\n", candidate, edgeOp, blocker, attrs))
			}
		}
	}

	return nil
}

func (g *DOTGenerator) turnColor(turn crossway.Turn) string {
	switch turn {
	case crossway.TurnRight:
		return g.options.RightTurnColor
	case crossway.TurnLeft:
		return g.options.LeftTurnColor
	default:
		return g.options.StraightColor
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(options...),
	}
}

// Generate creates an SVG representation of the conflict table
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the conflict table
func (g *DOTGenerator) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator{dotGenerator: g}
	return svgGen.Generate()
}
