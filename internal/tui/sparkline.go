package tui

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent samples of a series, oldest first.
type History struct {
	samples []float64
	limit   int
}

// NewHistory creates a history holding at most limit samples.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Push appends a sample, dropping the oldest when the history is full.
func (h *History) Push(v float64) {
	h.samples = append(h.samples, v)
	if over := len(h.samples) - h.limit; over > 0 {
		h.samples = append(h.samples[:0], h.samples[over:]...)
	}
}

// Len returns the number of samples.
func (h *History) Len() int { return len(h.samples) }

// Limit returns the maximum number of samples.
func (h *History) Limit() int { return h.limit }

// Last returns the most recent sample, or 0 if empty.
func (h *History) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Max returns the largest sample, or 0 if empty.
func (h *History) Max() float64 {
	var m float64
	for _, v := range h.samples {
		m = max(m, v)
	}
	return m
}

// Mean returns the average of the samples, or 0 if empty.
func (h *History) Mean() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	return append([]float64(nil), h.samples...)
}

// SetLimit changes the capacity, keeping the most recent samples that fit.
func (h *History) SetLimit(limit int) {
	h.limit = max(limit, 1)
	if over := len(h.samples) - h.limit; over > 0 {
		h.samples = append(h.samples[:0], h.samples[over:]...)
	}
}

// Reset removes every sample.
func (h *History) Reset() {
	h.samples = h.samples[:0]
}

// level maps v in [0, ceiling] to 0..steps-1. Values outside are clamped.
func level(v, ceiling float64, steps int) int {
	if ceiling <= 0 || v <= 0 {
		return 0
	}
	idx := int(v / ceiling * float64(steps-1))
	return min(idx, steps-1)
}

// RenderSparkline draws values as one row of block elements, scaled so that
// ceiling maps to the tallest block.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparklineChars[level(v, ceiling, len(sparklineChars))]
	}
	return string(runes)
}

// brailleDots maps (col 0-1, row 0-3) to the braille dot bit offsets.
// Braille character = U+2800 + sum of activated dot bits.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots values as dots on a grid of rows×width braille
// cells, scaled to ceiling. Each cell holds 2×4 dots; the most recent values
// are right-aligned and older ones are cut when they do not fit.
func RenderBrailleChart(values []float64, ceiling float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dotRows := rows * 4
	dotCols := width * 2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	for i, v := range values {
		dotCol := offset + i
		dotRow := dotRows - 1 - level(v, ceiling, dotRows)
		grid[dotRow/4][dotCol/2] |= brailleDots[dotCol%2][dotRow%4]
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}
