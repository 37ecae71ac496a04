package render_test

import (
	"testing"

	"github.com/alnah/go-md2docx/internal/render"
)

// ---------------------------------------------------------------------------
// TestColumnWidths - Proportional distribution
// ---------------------------------------------------------------------------

func TestColumnWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		weights  []int
		total    int64
		minWidth int64
	}{
		{"single column", []int{5}, render.ContentWidth, render.MinColumnWidth},
		{"equal weights", []int{3, 3, 3}, render.ContentWidth, render.MinColumnWidth},
		{"skewed weights", []int{1, 40, 2, 7}, render.ContentWidth, render.MinColumnWidth},
		{"zero weights", []int{0, 0}, 1000, 100},
		{"minimums exceed total", []int{1, 1, 1, 1}, 1000, 400},
		{"odd split", []int{1, 1, 1}, 1000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render.ColumnWidths(tt.weights, tt.total, tt.minWidth)
			if len(got) != len(tt.weights) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.weights))
			}
			var sum int64
			for _, w := range got {
				sum += w
			}
			if sum != tt.total {
				t.Errorf("sum = %d, want %d (widths %v)", sum, tt.total, got)
			}
			if int64(len(tt.weights))*tt.minWidth < tt.total {
				for i, w := range got {
					if w < tt.minWidth {
						t.Errorf("widths[%d] = %d, below minimum %d", i, w, tt.minWidth)
					}
				}
			}
		})
	}
}

func TestColumnWidths_Proportional(t *testing.T) {
	t.Parallel()

	got := render.ColumnWidths([]int{10, 30}, 4000, 0)
	if got[0] != 1000 || got[1] != 3000 {
		t.Errorf("ColumnWidths = %v, want [1000 3000]", got)
	}
}

func TestColumnWidths_EvenSplitWhenCramped(t *testing.T) {
	t.Parallel()

	got := render.ColumnWidths([]int{1, 50, 1}, 900, 400)
	want := []int64{300, 300, 300}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ColumnWidths = %v, want %v", got, want)
		}
	}
}

func TestColumnWidths_Empty(t *testing.T) {
	t.Parallel()

	if got := render.ColumnWidths(nil, 1000, 100); got != nil {
		t.Errorf("ColumnWidths(nil) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestFitImage - Scaling into the content box
// ---------------------------------------------------------------------------

func TestFitImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		w, h           int
		maxW, maxH     int64
		wantCX, wantCY int64
	}{
		{"fits unchanged", 100, 50, 10_000_000, 10_000_000, 100 * render.EMUPerPixel, 50 * render.EMUPerPixel},
		{"width clamped", 200, 100, 952_500, 10_000_000, 952_500, 476_250},
		{"height clamped", 100, 400, 10_000_000, 1_905_000, 476_250, 1_905_000},
		{"invalid size", 0, 100, 1000, 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cx, cy := render.FitImage(tt.w, tt.h, tt.maxW, tt.maxH)
			if cx != tt.wantCX || cy != tt.wantCY {
				t.Errorf("FitImage(%d, %d) = (%d, %d), want (%d, %d)", tt.w, tt.h, cx, cy, tt.wantCX, tt.wantCY)
			}
		})
	}
}

func TestFitImage_StaysInsidePage(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]int{{4000, 300}, {300, 4000}, {5000, 5000}, {1200, 900}} {
		cx, cy := render.FitImage(size[0], size[1], render.MaxImageWidth, render.MaxImageHeight)
		if cx > render.MaxImageWidth || cy > render.MaxImageHeight {
			t.Errorf("FitImage(%v) = (%d, %d), exceeds (%d, %d)", size, cx, cy, render.MaxImageWidth, render.MaxImageHeight)
		}
		// Aspect ratio within rounding.
		got := float64(cx) / float64(cy)
		want := float64(size[0]) / float64(size[1])
		if d := got/want - 1; d > 0.01 || d < -0.01 {
			t.Errorf("FitImage(%v) ratio = %.3f, want %.3f", size, got, want)
		}
	}
}
