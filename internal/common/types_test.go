package common

import "testing"

func TestParseViewID(t *testing.T) {
	for _, v := range AllViews {
		got, err := ParseViewID(v.String())
		if err != nil {
			t.Fatalf("ParseViewID(%q) returned error: %v", v.String(), err)
		}
		if got != v {
			t.Errorf("ParseViewID(%q) = %v, want %v", v.String(), got, v)
		}
	}

	if _, err := ParseViewID("settings"); err == nil {
		t.Error("Expected error for unknown view")
	}

	got, err := ParseViewID("  Cameras ")
	if err != nil || got != ViewCameras {
		t.Errorf("Expected case-insensitive parse, got %v, %v", got, err)
	}
}

func TestViewCycle(t *testing.T) {
	if ViewDemo.Next() != ViewDashboard {
		t.Errorf("Expected wrap to dashboard, got %v", ViewDemo.Next())
	}
	if ViewDashboard.Prev() != ViewDemo {
		t.Errorf("Expected wrap to demo, got %v", ViewDashboard.Prev())
	}
	if len(AllViews) != 8 {
		t.Errorf("Expected 8 views, got %d", len(AllViews))
	}
	if ViewID(42).Valid() {
		t.Error("Expected out-of-range view to be invalid")
	}
}

func TestDensityPct(t *testing.T) {
	tests := []struct {
		count, capacity, want int
	}{
		{847, 1000, 85},
		{1102, 900, 122},
		{0, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		g := Gate{Count: tt.count, Capacity: tt.capacity}
		if got := g.DensityPct(); got != tt.want {
			t.Errorf("DensityPct(%d/%d) = %d, want %d", tt.count, tt.capacity, got, tt.want)
		}
	}
}

func TestBreakdown(t *testing.T) {
	r := &AnalysisResult{DetectedCount: 999, RiskLevel: RiskHigh}
	got := r.Breakdown()
	want := []int{599, 119, 49, 79}
	for i, g := range got {
		if g.Count != want[i] {
			t.Errorf("%s: expected %d, got %d", g.Label, want[i], g.Count)
		}
	}
	if RiskHigh.String() != "HIGH" {
		t.Errorf("Expected HIGH, got %s", RiskHigh.String())
	}
}
