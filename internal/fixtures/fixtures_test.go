package fixtures

import (
	"testing"

	"github.com/yildizm/CrowdGuard/internal/common"
)

type fixedSource struct {
	value float64
}

func (f fixedSource) Float64() float64 { return f.value }

func TestGates(t *testing.T) {
	gs := Gates()
	if len(gs) != 4 {
		t.Fatalf("Expected 4 gates, got %d", len(gs))
	}

	tests := []struct {
		index  int
		pct    int
		status common.GateStatus
		short  string
	}{
		{0, 85, common.GateWarning, "Gate 1"},
		{1, 53, common.GateSafe, "Gate 2"},
		{2, 122, common.GateDanger, "Gate 3"},
		{3, 28, common.GateSafe, "Gate 4"},
	}

	for _, tt := range tests {
		g := gs[tt.index]
		if got := g.DensityPct(); got != tt.pct {
			t.Errorf("%s: expected density %d%%, got %d%%", g.Name, tt.pct, got)
		}
		if g.Status != tt.status {
			t.Errorf("%s: expected status %s, got %s", g.Name, tt.status, g.Status)
		}
		if g.ShortName() != tt.short {
			t.Errorf("%s: expected short name %q, got %q", g.Name, tt.short, g.ShortName())
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	gs := Gates()
	gs[0].Count = -1
	if Gates()[0].Count != 847 {
		t.Error("Mutating a returned gate slice changed the fixture")
	}

	groups := PriorityGroups()
	groups[0].Rules[0] = "changed"
	if PriorityGroups()[0].Rules[0] != "Dedicated entry lane" {
		t.Error("Mutating returned rules changed the fixture")
	}
}

func TestAlertCounts(t *testing.T) {
	counts := AlertCounts()
	want := map[common.AlertLevel]int{
		common.AlertDanger:  2,
		common.AlertWarning: 3,
		common.AlertSafe:    1,
		common.AlertInfo:    1,
	}
	for level, n := range want {
		if counts[level] != n {
			t.Errorf("Expected %d %s alerts, got %d", n, level, counts[level])
		}
	}
}

func TestGateShortNames(t *testing.T) {
	names := GateShortNames()
	want := []string{"Gate 1", "Gate 2", "Gate 3", "Gate 4"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %q at %d, got %q", want[i], i, names[i])
		}
	}
}

func TestCrowdTrendBounds(t *testing.T) {
	low := CrowdTrend(fixedSource{0})
	high := CrowdTrend(fixedSource{0.999999})

	if len(low) != 24 || len(high) != 24 {
		t.Fatalf("Expected 24 samples, got %d and %d", len(low), len(high))
	}
	if low[0].Hour != "0:00" || low[23].Hour != "23:00" {
		t.Errorf("Unexpected hour labels %q..%q", low[0].Hour, low[23].Hour)
	}
	if low[0].Gate1 != 200 || low[0].Total != 800 || low[0].Risk != 0 {
		t.Errorf("Unexpected lower bounds: %+v", low[0])
	}
	if high[0].Gate1 != 699 || high[0].Gate2 != 549 || high[0].Gate3 != 399 || high[0].Total != 1999 || high[0].Risk != 99 {
		t.Errorf("Unexpected upper bounds: %+v", high[0])
	}
}

func TestThreatAndZoneTones(t *testing.T) {
	for _, th := range Threats() {
		tone := th.Tone()
		switch {
		case th.Level > 70 && tone != ToneDanger:
			t.Errorf("%s: expected danger tone", th.Name)
		case th.Level <= 45 && tone != ToneSafe:
			t.Errorf("%s: expected safe tone", th.Name)
		}
	}
	if (Zone{Name: "C", Risk: 91}).Tone() != ToneDanger {
		t.Error("Expected zone C to be danger")
	}
	if (Zone{Name: "E", Risk: 55}).Tone() != ToneWarning {
		t.Error("Expected zone E to be warning")
	}
}
