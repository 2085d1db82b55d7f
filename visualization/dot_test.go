package visualization_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anggasct/crossway"
	"github.com/anggasct/crossway/visualization"
)

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator()

	dotContent, err := generator.Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.Contains(dotContent, "digraph Intersection") {
		t.Error("DOT content should contain graph declaration")
	}

	for _, m := range crossway.AllMovements() {
		if !strings.Contains(dotContent, "\""+m.String()+"\" [fillcolor=") {
			t.Errorf("DOT content should contain node for %s", m)
		}
	}

	if !strings.Contains(dotContent, "\"N->W\" -> \"E->W\" [label=\"1:W\"]") {
		t.Error("DOT content should contain labelled conflict edge from N->W to E->W")
	}

	if !strings.Contains(dotContent, "\"N->E\" -> \"E->S\" [label=\"4:S\"]") {
		t.Error("DOT content should label the last conflict group of N->E")
	}

	if strings.Count(dotContent, " -> ") != 60 {
		t.Errorf("Expected 60 conflict edges, got %d", strings.Count(dotContent, " -> "))
	}

	t.Logf("Generated DOT content:\n%s", dotContent)
}

func TestDOTGenerationCompact(t *testing.T) {
	options := visualization.DefaultDOTOptions()
	options.CompactMode = true
	options.ShowTurns = false
	generator := visualization.NewDOTGenerator(options)

	dotContent, err := generator.Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.HasPrefix(dotContent, "graph Intersection") {
		t.Error("Compact DOT content should be an undirected graph")
	}
	if strings.Contains(dotContent, "(right)") {
		t.Error("Turns should be hidden")
	}

	// 29 pairs list each other, 2 pairs are listed on one side only
	if strings.Count(dotContent, " -- ") != 31 {
		t.Errorf("Expected 31 undirected edges, got %d", strings.Count(dotContent, " -- "))
	}
}

func TestDOTGenerationWithOccupancy(t *testing.T) {
	var occ crossway.Occupancy
	occ.Counts[crossway.South][crossway.North] = 2

	dotContent, err := visualization.NewDOTGenerator().WithOccupancy(occ).Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.Contains(dotContent, "\"S->N\" [fillcolor=lightcoral label=\"S->N\\n(straight)\\n[2 inside]\"]") {
		t.Errorf("Occupied movement should be highlighted:\n%s", dotContent)
	}
	if !strings.Contains(dotContent, "\"E->N\" [fillcolor=lightgreen") {
		t.Error("Right turns should keep their colour")
	}
}

func TestDOTGenerateToFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "conflicts.dot")

	if err := visualization.NewDOTGenerator().GenerateToFile(filename); err != nil {
		t.Fatalf("Failed to write DOT file: %v", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read DOT file: %v", err)
	}
	if !strings.Contains(string(content), "digraph Intersection") {
		t.Error("File should contain the DOT graph")
	}
}
