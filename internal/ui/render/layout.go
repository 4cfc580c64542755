package render

type layoutMetrics struct {
	listWidth      int
	separatorWidth int
	detailStart    int
	detailWidth    int
	showDetail     bool
}

const (
	minListPanelWidth      = 24
	minDetailPanelWidth    = 20
	minDetailTerminalWidth = 60
	defaultPanelRatio      = 60
	minPanelRatio          = 10
	maxPanelRatio          = 90
)

// computeLayout splits the width between the list and the detail panel.
// ratio is the list's share in percent; the detail panel is dropped when
// either side would fall under its minimum width.
func computeLayout(w, ratio int, hasDetail bool) layoutMetrics {
	if w < 0 {
		w = 0
	}
	if ratio < minPanelRatio || ratio > maxPanelRatio {
		ratio = defaultPanelRatio
	}

	metrics := layoutMetrics{listWidth: w, detailStart: w}
	if !hasDetail || w < minDetailTerminalWidth {
		return metrics
	}

	contentWidth := w - 1
	listWidth := (contentWidth*ratio + 50) / 100
	if listWidth < minListPanelWidth {
		listWidth = minListPanelWidth
	}
	detailWidth := contentWidth - listWidth
	if detailWidth < minDetailPanelWidth {
		deficit := minDetailPanelWidth - detailWidth
		listWidth -= deficit
		detailWidth = minDetailPanelWidth
	}
	if listWidth < minListPanelWidth {
		return metrics
	}

	metrics.showDetail = true
	metrics.listWidth = listWidth
	metrics.separatorWidth = 1
	metrics.detailStart = listWidth + 1
	metrics.detailWidth = detailWidth
	return metrics
}
