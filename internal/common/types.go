package common

import (
	"fmt"
	"math"
	"strings"
)

// ViewID identifies one of the dashboard panels
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewCameras
	ViewPriority
	ViewSecurity
	ViewGuards
	ViewAlerts
	ViewEmergency
	ViewDemo
)

// AllViews lists every view in navigation order
var AllViews = []ViewID{
	ViewDashboard,
	ViewCameras,
	ViewPriority,
	ViewSecurity,
	ViewGuards,
	ViewAlerts,
	ViewEmergency,
	ViewDemo,
}

var viewNames = map[ViewID][2]string{
	// [identifier, label]
	ViewDashboard: {"dashboard", "Dashboard"},
	ViewCameras:   {"cameras", "Live Cameras"},
	ViewPriority:  {"priority", "Priority Groups"},
	ViewSecurity:  {"security", "OS Security"},
	ViewGuards:    {"guards", "Guard Assign"},
	ViewAlerts:    {"alerts", "Alert Center"},
	ViewEmergency: {"emergency", "Emergency Mode"},
	ViewDemo:      {"demo", "Video Analysis"},
}

// String returns the lowercase identifier of the view
func (v ViewID) String() string {
	if names, ok := viewNames[v]; ok {
		return names[0]
	}
	return "unknown"
}

// Label returns the navigation label of the view
func (v ViewID) Label() string {
	if names, ok := viewNames[v]; ok {
		return names[1]
	}
	return "Unknown"
}

// Valid reports whether v is a member of the view enumeration
func (v ViewID) Valid() bool {
	_, ok := viewNames[v]
	return ok
}

// Next returns the view after v in navigation order, wrapping around
func (v ViewID) Next() ViewID {
	return AllViews[(int(v)+1)%len(AllViews)]
}

// Prev returns the view before v in navigation order, wrapping around
func (v ViewID) Prev() ViewID {
	return AllViews[(int(v)+len(AllViews)-1)%len(AllViews)]
}

// ParseViewID parses a view identifier such as "cameras"
func ParseViewID(s string) (ViewID, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, v := range AllViews {
		if v.String() == want {
			return v, nil
		}
	}
	return ViewDashboard, fmt.Errorf("unknown view: %q", s)
}

// GateStatus is the display status of a gate
type GateStatus string

const (
	GateSafe    GateStatus = "safe"
	GateWarning GateStatus = "warning"
	GateDanger  GateStatus = "danger"
)

// Gate is a monitored entry or exit point
type Gate struct {
	ID       string     `yaml:"id" json:"id"`
	Name     string     `yaml:"name" json:"name"`
	Count    int        `yaml:"count" json:"count"`
	Capacity int        `yaml:"capacity" json:"capacity"`
	Status   GateStatus `yaml:"status" json:"status"`
	CameraID string     `yaml:"camera_id" json:"camera_id"`
}

// DensityPct returns the occupancy percentage rounded to the nearest integer
func (g Gate) DensityPct() int {
	if g.Capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(g.Count) / float64(g.Capacity) * 100))
}

// ShortName returns the gate name without its description, e.g. "Gate 1"
func (g Gate) ShortName() string {
	name, _, _ := strings.Cut(g.Name, "–")
	return strings.TrimSpace(name)
}

// GuardStatus is the duty status of a guard
type GuardStatus string

const (
	GuardOnDuty   GuardStatus = "On Duty"
	GuardOnPatrol GuardStatus = "On Patrol"
	GuardStandby  GuardStatus = "Standby"
)

// Guard is a registered security guard
type Guard struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	AssignedGate string      `json:"assigned_gate"`
	Status       GuardStatus `json:"status"`
	Phone        string      `json:"phone"`
}

// AlertLevel is the severity of an alert
type AlertLevel string

const (
	AlertDanger  AlertLevel = "danger"
	AlertWarning AlertLevel = "warning"
	AlertSafe    AlertLevel = "safe"
	AlertInfo    AlertLevel = "info"
)

// Alert is a single incident record
type Alert struct {
	Timestamp string     `json:"timestamp"`
	Message   string     `json:"message"`
	Level     AlertLevel `json:"level"`
}

// RiskLevel is the ordinal severity assigned to an analysis result
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskCritical
)

// RiskLevels lists the risk levels in ascending order
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskCritical}

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskModerate:
		return "MODERATE"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the risk level by name
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// AnalysisResult is the outcome of one completed video analysis
type AnalysisResult struct {
	DetectedCount    int       `json:"detected_count"`
	RiskLevel        RiskLevel `json:"risk_level"`
	PriorityFindings []string  `json:"priority_findings"`
}

// Breakdown returns the estimated per-group counts derived from the detected count
func (r *AnalysisResult) Breakdown() []GroupCount {
	n := float64(r.DetectedCount)
	return []GroupCount{
		{Label: "Adults", Count: int(math.Floor(n * 0.6))},
		{Label: "Children", Count: int(math.Floor(n * 0.12))},
		{Label: "Disabled", Count: int(math.Floor(n * 0.05))},
		{Label: "Seniors", Count: int(math.Floor(n * 0.08))},
	}
}

// GroupCount is a labelled head count
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VideoHandle refers to a selected video file. The content is never read.
type VideoHandle struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}
