package formatter

import (
	"fmt"
	"slices"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// levelEmoji returns the go-termfmt symbol for an alert level
func levelEmoji(level common.AlertLevel, opts *termfmt.TerminalOptions) string {
	switch level {
	case common.AlertDanger:
		return termfmt.GetEmoji("error", opts)
	case common.AlertWarning:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// gateLevel maps a gate status to the alert level it is shown with
func gateLevel(status common.GateStatus) common.AlertLevel {
	switch status {
	case common.GateDanger:
		return common.AlertDanger
	case common.GateWarning:
		return common.AlertWarning
	default:
		return common.AlertSafe
	}
}

// overCapacity returns the gates holding more people than their capacity
func overCapacity(gates []common.Gate) []common.Gate {
	return slices.DeleteFunc(slices.Clone(gates), func(g common.Gate) bool { return g.Count <= g.Capacity })
}

// generateRecommendations derives actions from the gate load, guard coverage
// and open alerts
func generateRecommendations(s *Snapshot) []string {
	var recs []string

	for _, g := range overCapacity(s.Gates) {
		recs = append(recs, fmt.Sprintf("Redirect arrivals away from %s: %d%% of capacity", g.ShortName(), g.DensityPct()))
	}

	covered := make(map[string]bool, len(s.Guards))
	for _, g := range s.Guards {
		covered[g.AssignedGate] = true
	}
	for _, g := range s.Gates {
		if !covered[g.ShortName()] {
			recs = append(recs, fmt.Sprintf("Assign a guard to %s", g.ShortName()))
		}
	}

	if n := s.AlertCounts()[common.AlertDanger]; n > 0 {
		recs = append(recs, fmt.Sprintf("Review %d critical alerts in the Alert Center", n))
	}
	if s.Emergency {
		recs = append(recs, "Keep emergency routes clear until emergency mode is deactivated")
	}

	if len(recs) == 0 {
		recs = append(recs, "All gates within capacity, continue routine monitoring")
	}
	return recs
}

// emojiDisabled follows the global --no-emoji switch
func emojiDisabled() bool {
	return emoji.IsEmojiDisabled()
}
