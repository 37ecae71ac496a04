package render

// Page geometry in twips (1/1440 inch) for A4 with 1-inch margins.
const (
	PageWidth    = 11906
	PageHeight   = 16838
	PageMargin   = 1440
	ContentWidth = PageWidth - 2*PageMargin

	// MinColumnWidth keeps narrow columns readable (about 0.6 inch).
	MinColumnWidth = 850

	requirementLabelWidth = 2200
)

// EMU (English Metric Units) conversions used for inline images.
const (
	EMUPerPixel = 9525 // at 96 DPI
	EMUPerTwip  = 635

	MaxImageWidth  = ContentWidth * EMUPerTwip
	MaxImageHeight = 11000 * EMUPerTwip
)

// ColumnWidths distributes total twips over columns in proportion to their
// weights, giving each at least minWidth. The result always sums to total:
// the last column takes whatever rounding leaves over. When minimum widths
// alone exceed total the columns are split evenly.
func ColumnWidths(weights []int, total, minWidth int64) []int64 {
	n := int64(len(weights))
	if n == 0 {
		return nil
	}
	widths := make([]int64, n)

	if n*minWidth >= total {
		each := total / n
		for i := range widths {
			widths[i] = each
		}
		widths[n-1] = total - each*(n-1)
		return widths
	}

	var sum int64
	for _, w := range weights {
		sum += int64(max(w, 1))
	}
	free := total - n*minWidth

	var used int64
	for i, w := range weights[:n-1] {
		widths[i] = minWidth + free*int64(max(w, 1))/sum
		used += widths[i]
	}
	widths[n-1] = total - used
	return widths
}

// FitImage scales a pixel size to EMU so it fits inside maxW x maxH while
// keeping the aspect ratio. Width is clamped first, then height.
func FitImage(widthPx, heightPx int, maxW, maxH int64) (cx, cy int64) {
	if widthPx <= 0 || heightPx <= 0 {
		return 0, 0
	}
	cx = int64(widthPx) * EMUPerPixel
	cy = int64(heightPx) * EMUPerPixel

	if cx > maxW {
		cy = cy * maxW / cx
		cx = maxW
	}
	if cy > maxH {
		cx = cx * maxH / cy
		cy = maxH
	}
	return max(cx, 1), max(cy, 1)
}
