package parsing

import (
	"regexp"
	"strings"
)

// productAnchor finds a short name-like prefix immediately followed by a
// "Subtotal" label and an amount, even when line breaks fall between the
// tokens.
var productAnchor = regexp.MustCompile(`(?is)([A-Za-z0-9].{0,80}?)\s+Subtotal\s*\$?\s*([0-9.,]+)`)

var (
	dealPlanPattern     = regexp.MustCompile(`(?i)Deal\s+plan:\s*([^\n]+)`)
	lineSubtotalPattern = regexp.MustCompile(`(?i)Subtotal\s*\$?\s*([0-9.,]+)`)
	planDiscountPattern = regexp.MustCompile(`(?i)Plan\s+discount\s*[-–]?\s*\$?\s*([0-9.,]+)`)
	lineTotalPattern    = regexp.MustCompile(`(?i)Total\s*\$?\s*([0-9.,]+)`)
)

// SegmenterConfig tunes the sliding-window scan for product blocks. The
// defaults reproduce the layouts seen in real documents, but the skip is a
// heuristic: a block shorter than BlockSkip lines causes the next block's
// leading lines to be skipped, and a longer one may leave residual text that
// re-matches later. Validate changes against real documents.
type SegmenterConfig struct {
	// DetectWindow is how many lines are joined when searching for the
	// next product anchor.
	DetectWindow int
	// DetailWindow is how many lines are joined when recovering the
	// matched block's per-item fields.
	DetailWindow int
	// BlockSkip is how many lines the cursor advances after a match.
	BlockSkip int
}

// DefaultSegmenterConfig returns the window sizes and skip used in
// production.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{DetectWindow: 12, DetailWindow: 25, BlockSkip: 6}
}

// SegmentLineItems scans the text with the default configuration.
func SegmentLineItems(text string) []LineItem {
	return DefaultSegmenterConfig().Segment(text)
}

// Segment scans the document text for product blocks and returns the line
// items in document order. It is a pure function and may be re-invoked on
// the same text.
func (c SegmenterConfig) Segment(text string) []LineItem {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			lines = append(lines, t)
		}
	}

	var items []LineItem
	i := 0
	for i < len(lines) {
		window := strings.Join(lines[i:clampEnd(i+c.DetectWindow, len(lines))], "\n")
		m := productAnchor.FindStringSubmatch(window)
		if m == nil {
			i++
			continue
		}

		name := strings.TrimSpace(m[1])
		item := LineItem{ProductName: &name}

		// Per-item fields are recovered independently from a wider
		// window; whatever subset matches is kept.
		detail := strings.Join(lines[i:clampEnd(i+c.DetailWindow, len(lines))], "\n")
		if dm := dealPlanPattern.FindStringSubmatch(detail); dm != nil {
			plan := strings.TrimSpace(dm[1])
			item.DealPlan = &plan
		}
		if sm := lineSubtotalPattern.FindStringSubmatch(detail); sm != nil {
			item.Subtotal = NormalizeAmount(sm[1])
		}
		if pm := planDiscountPattern.FindStringSubmatch(detail); pm != nil {
			item.PlanDiscount = NormalizeAmount(pm[1])
		}
		if tm := lineTotalPattern.FindStringSubmatch(detail); tm != nil {
			item.Total = NormalizeAmount(tm[1])
		}

		items = append(items, item)
		i += c.BlockSkip
	}
	return items
}

func clampEnd(end, n int) int {
	if end > n {
		return n
	}
	return end
}
