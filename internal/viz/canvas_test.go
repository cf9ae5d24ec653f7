package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set did not light a sub-pixel")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left dot = %#x, want 0x2801", c.Grid[0][0])
	}
	// out of range is ignored, not a panic
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasSetSubPixelPacking(t *testing.T) {
	c := NewCanvas(1, 1)
	// light all eight dots of one cell
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			c.Set(x, y)
		}
	}
	if c.Grid[0][0] != 0x28FF {
		t.Errorf("full cell = %#x, want 0x28ff", c.Grid[0][0])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 5)
	c.DrawLine(0, 0, 9, 19)
	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[4][4] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestCanvasMarkOverridesPixels(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0)
	c.Mark(0, 0, '✕', lipgloss.NewStyle())
	out := c.String()
	if !strings.ContainsRune(out, '✕') {
		t.Error("marker missing from output")
	}
	if strings.ContainsRune(out, 0x2801) {
		t.Error("marker did not win over the pixel in its cell")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Mark(2, 0, 'o', lipgloss.NewStyle())
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("pixel %#x survived Clear", r)
			}
		}
	}
	if strings.ContainsRune(c.String(), 'o') {
		t.Error("marker survived Clear")
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("%d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("line %q has %d cells, want 3", line, len([]rune(line)))
		}
	}
}
