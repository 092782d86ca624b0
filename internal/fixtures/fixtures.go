package fixtures

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
)

var gates = []common.Gate{
	{ID: "gate1", Name: "Gate 1 – Main Entry", Count: 847, Capacity: 1000, Status: common.GateWarning, CameraID: "CAM-01"},
	{ID: "gate2", Name: "Gate 2 – North", Count: 423, Capacity: 800, Status: common.GateSafe, CameraID: "CAM-02"},
	{ID: "gate3", Name: "Gate 3 – South", Count: 1102, Capacity: 900, Status: common.GateDanger, CameraID: "CAM-03"},
	{ID: "gate4", Name: "Gate 4 – Emergency", Count: 56, Capacity: 200, Status: common.GateSafe, CameraID: "CAM-04"},
}

var guards = []common.Guard{
	{Name: "Sanjai R", ID: "G-001", AssignedGate: "Gate 3", Status: common.GuardOnDuty, Phone: "+91 98XXX XXXXX"},
	{Name: "Selva Harish", ID: "G-002", AssignedGate: "Gate 1", Status: common.GuardOnDuty, Phone: "+91 97XXX XXXXX"},
	{Name: "Rithick K", ID: "G-003", AssignedGate: "Gate 2", Status: common.GuardOnPatrol, Phone: "+91 96XXX XXXXX"},
	{Name: "Arun M", ID: "G-004", AssignedGate: "Gate 4", Status: common.GuardStandby, Phone: "+91 95XXX XXXXX"},
}

var alerts = []common.Alert{
	{Timestamp: "14:32:07", Message: "CRITICAL: Gate 3 density exceeded 90%", Level: common.AlertDanger},
	{Timestamp: "14:28:51", Message: "WARNING: Rapid flow increase at Gate 1", Level: common.AlertWarning},
	{Timestamp: "14:25:03", Message: "ALERT: 3 disabled persons detected near Gate 3 – assign escort", Level: common.AlertWarning},
	{Timestamp: "14:21:44", Message: "INFO: Emergency lane cleared at Gate 4", Level: common.AlertSafe},
	{Timestamp: "14:18:12", Message: "ALERT: Panic movement detected – Zone B", Level: common.AlertDanger},
	{Timestamp: "14:15:00", Message: "INFO: Child detected unaccompanied – Gate 2", Level: common.AlertWarning},
	{Timestamp: "14:10:33", Message: "System: AI model re-calibrated for night mode", Level: common.AlertInfo},
}

// Gates returns the monitored gates
func Gates() []common.Gate { return slices.Clone(gates) }

// Guards returns the initial guard roster
func Guards() []common.Guard { return slices.Clone(guards) }

// Alerts returns the incident history
func Alerts() []common.Alert { return slices.Clone(alerts) }

// GateShortNames returns "Gate 1".."Gate 4"
func GateShortNames() []string {
	return lo.Map(gates, func(g common.Gate, _ int) string { return g.ShortName() })
}

// AlertCounts tallies the incident history by level
func AlertCounts() map[common.AlertLevel]int {
	return lo.CountValuesBy(alerts, func(a common.Alert) common.AlertLevel { return a.Level })
}

// Tone is a display color family
type Tone string

const (
	ToneCyber   Tone = "cyber"
	ToneSafe    Tone = "safe"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneMuted   Tone = "muted"
)

// PriorityShare is a row of the dashboard priority detection panel
type PriorityShare struct {
	Label string
	Count int
	Pct   int
	Tone  Tone
}

// PriorityGroup is a card of the priority groups view
type PriorityGroup struct {
	Label string
	Count int
	Tone  Tone
	Rules []string
}

// Stage is one step of the priority flow protocol
type Stage struct {
	Number      int
	Name        string
	Description string
}

// GateDistribution is the per-gate priority group split
type GateDistribution struct {
	Gate     string
	Children int
	Disabled int
	Senior   int
	Medical  int
}

var priorityShares = []PriorityShare{
	{Label: "Children (< 12)", Count: 234, Pct: 23, Tone: ToneCyber},
	{Label: "Disabled Persons", Count: 87, Pct: 9, Tone: ToneWarning},
	{Label: "Senior Citizens", Count: 156, Pct: 15, Tone: ToneSafe},
	{Label: "General Public", Count: 3804, Pct: 53, Tone: ToneMuted},
}

var priorityGroups = []PriorityGroup{
	{Label: "Children (< 12)", Count: 234, Tone: ToneCyber, Rules: []string{"Dedicated entry lane", "Accompanied escort required", "Low-density zone placement", "Lost child alert system", "Real-time head count"}},
	{Label: "Disabled Persons", Count: 87, Tone: ToneWarning, Rules: []string{"Wheelchair accessible paths", "Priority boarding zones", "Guard assistance protocol", "Emergency evacuation first", "Medical alert monitoring"}},
	{Label: "Senior Citizens (60+)", Count: 156, Tone: ToneSafe, Rules: []string{"Slow flow lanes", "Rest zone proximity", "Medical alert system", "Priority exit access", "Companion verification"}},
	{Label: "Medical Priority", Count: 23, Tone: ToneDanger, Rules: []string{"Immediate medical response", "Ambulance standby alert", "Zone isolation capability", "Direct contact with paramedics", "Real-time vitals monitoring"}},
}

var stages = []Stage{
	{1, "Entry Screening", "Priority identification at gate entry via AI detection"},
	{2, "Lane Assignment", "Dedicated lanes assigned for children, disabled & seniors"},
	{3, "Escort Protocol", "Guard escort activated for vulnerable individuals"},
	{4, "Safe Zone Placement", "Priority groups directed to designated safe zones"},
	{5, "Continuous Monitoring", "Real-time tracking of priority individuals throughout venue"},
}

var distribution = []GateDistribution{
	{Gate: "Gate 1", Children: 65, Disabled: 12, Senior: 34, Medical: 5},
	{Gate: "Gate 2", Children: 42, Disabled: 28, Senior: 67, Medical: 8},
	{Gate: "Gate 3", Children: 89, Disabled: 35, Senior: 44, Medical: 9},
	{Gate: "Gate 4", Children: 38, Disabled: 12, Senior: 11, Medical: 1},
}

// PriorityShares returns the dashboard priority detection rows
func PriorityShares() []PriorityShare { return slices.Clone(priorityShares) }

// PriorityGroups returns the priority group cards
func PriorityGroups() []PriorityGroup {
	return lo.Map(priorityGroups, func(g PriorityGroup, _ int) PriorityGroup {
		g.Rules = slices.Clone(g.Rules)
		return g
	})
}

// Stages returns the stage-wise priority flow protocol
func Stages() []Stage { return slices.Clone(stages) }

// Distribution returns the per-gate priority group split
func Distribution() []GateDistribution { return slices.Clone(distribution) }

// SecurityLayer is a protection layer shown on the security view
type SecurityLayer struct {
	Name   string
	Status string
}

// Threat is a row of the threat detection matrix
type Threat struct {
	Name   string
	Level  int
	Status string
}

// Tone returns the display tone for the threat level
func (t Threat) Tone() Tone {
	switch {
	case t.Level > 70:
		return ToneDanger
	case t.Level > 45:
		return ToneWarning
	default:
		return ToneSafe
	}
}

// StackLayer is a row of the OS security stack
type StackLayer struct {
	Layer  string
	Status string
}

var securityLayers = []SecurityLayer{
	{Name: "Facial Recognition", Status: "ACTIVE"},
	{Name: "Intrusion Detection", Status: "ACTIVE"},
	{Name: "OS Firewall (Level 3)", Status: "ACTIVE"},
	{Name: "Network Encryption", Status: "ACTIVE"},
	{Name: "Panic Detection AI", Status: "SCANNING"},
	{Name: "Perimeter Sensors", Status: "ACTIVE"},
}

var threats = []Threat{
	{Name: "Stampede Risk", Level: 78, Status: "HIGH"},
	{Name: "Unauthorized Access", Level: 12, Status: "LOW"},
	{Name: "Panic Movement", Level: 55, Status: "MODERATE"},
	{Name: "Perimeter Breach", Level: 8, Status: "LOW"},
	{Name: "Crowd Surge", Level: 82, Status: "CRITICAL"},
	{Name: "Lane Obstruction", Level: 34, Status: "LOW"},
}

var securityStack = []StackLayer{
	{Layer: "Layer 1 – Physical Sensors", Status: "SECURE"},
	{Layer: "Layer 2 – Network Firewall", Status: "SECURE"},
	{Layer: "Layer 3 – AI Auth Engine", Status: "ACTIVE"},
	{Layer: "Layer 4 – Data Encryption", Status: "AES-256"},
	{Layer: "Layer 5 – Alert Gateway", Status: "LIVE"},
	{Layer: "Layer 6 – Backup Systems", Status: "SYNCED"},
}

// SecurityLayers returns the protection layers
func SecurityLayers() []SecurityLayer { return slices.Clone(securityLayers) }

// Threats returns the threat detection matrix
func Threats() []Threat { return slices.Clone(threats) }

// SecurityStack returns the OS security stack
func SecurityStack() []StackLayer { return slices.Clone(securityStack) }

// RadarScore is one axis of the AI risk radar
type RadarScore struct {
	Subject string
	Score   int
}

var radar = []RadarScore{
	{"Density", 85},
	{"Flow Rate", 62},
	{"Risk Level", 78},
	{"Response", 90},
	{"Security", 95},
	{"Priority Care", 70},
}

// Radar returns the AI risk radar scores
func Radar() []RadarScore { return slices.Clone(radar) }

var tickerMessages = []string{
	"⚠ GATE 3: DENSITY CRITICAL – IMMEDIATE ACTION REQUIRED",
	"🟡 GATE 1: FLOW RATE ELEVATED – MONITOR CLOSELY",
	"✅ GATE 2: NORMAL OPERATION",
	"🔴 PANIC MOVEMENT DETECTED – ZONE B – DEPLOYING GUARDS",
	"🟢 EMERGENCY LANE: CLEAR",
	"⚠ UNACCOMPANIED CHILD ALERT – GATE 2 – SECURITY NOTIFIED",
	"📹 ALL 4 CAMERAS: LIVE FEED ACTIVE",
	"🔐 OS SECURITY LEVEL 3: ACTIVE – ALL SYSTEMS SECURE",
}

// TickerMessages returns the header ticker lines
func TickerMessages() []string { return slices.Clone(tickerMessages) }

// Route is an evacuation route
type Route struct {
	Name     string
	From     string
	To       string
	Priority string
	Tone     Tone
}

// Contact is an emergency response contact
type Contact struct {
	Role   string
	Number string
	Tone   Tone
}

var routes = []Route{
	{Name: "Route A", From: "Gate 3 → Main Hall", To: "Emergency Exit 1", Priority: "PRIORITY", Tone: ToneDanger},
	{Name: "Route B", From: "Gate 1 → Corridor B", To: "Emergency Exit 2", Priority: "GENERAL", Tone: ToneWarning},
	{Name: "Route C", From: "Gate 2 → Side Path", To: "Assembly Point", Priority: "GENERAL", Tone: ToneSafe},
	{Name: "Route D", From: "Zone B → Ramp", To: "Disabled Exit", Priority: "DISABLED", Tone: ToneCyber},
}

var contacts = []Contact{
	{Role: "Police Control", Number: "100", Tone: ToneCyber},
	{Role: "Ambulance", Number: "108", Tone: ToneDanger},
	{Role: "Fire Brigade", Number: "101", Tone: ToneWarning},
	{Role: "Event Security", Number: "Security HQ", Tone: ToneSafe},
}

// Routes returns the evacuation route matrix
func Routes() []Route { return slices.Clone(routes) }

// Contacts returns the emergency contacts
func Contacts() []Contact { return slices.Clone(contacts) }

// Zone is a cell of the zone risk map
type Zone struct {
	Name string
	Risk int
}

// Tone returns the display tone for the zone risk
func (z Zone) Tone() Tone {
	switch {
	case z.Risk > 70:
		return ToneDanger
	case z.Risk > 50:
		return ToneWarning
	default:
		return ToneSafe
	}
}

var detectionStats = []common.GroupCount{
	{Label: "Adults", Count: 387},
	{Label: "Children", Count: 42},
	{Label: "Disabled", Count: 12},
	{Label: "Seniors", Count: 28},
	{Label: "Unidentified", Count: 378},
}

var zones = []Zone{{"A", 34}, {"B", 78}, {"C", 91}, {"D", 22}, {"E", 55}, {"F", 43}}

// DetectionStats returns the camera detection stats
func DetectionStats() []common.GroupCount { return slices.Clone(detectionStats) }

// Zones returns the zone risk map
func Zones() []Zone { return slices.Clone(zones) }

// DetectionBox is a simulated bounding box on the selected camera feed
type DetectionBox struct {
	X, Y, W, H int // percent of the frame
	Kind       string
	Tone       Tone
}

var boxes = []DetectionBox{
	{15, 30, 8, 25, "child", ToneCyber},
	{35, 25, 6, 20, "adult", ToneSafe},
	{55, 35, 7, 22, "disabled", ToneWarning},
	{70, 20, 9, 28, "adult", ToneSafe},
	{28, 45, 5, 18, "child", ToneCyber},
	{82, 40, 7, 22, "adult", ToneSafe},
}

// DetectionBoxes returns the simulated detection overlay
func DetectionBoxes() []DetectionBox { return slices.Clone(boxes) }

// TrendPoint is one hourly sample of the crowd density trend
type TrendPoint struct {
	Hour  string `json:"hour"`
	Gate1 int    `json:"gate1"`
	Gate2 int    `json:"gate2"`
	Gate3 int    `json:"gate3"`
	Total int    `json:"total"`
	Risk  int    `json:"risk"`
}

// CrowdTrend generates 24 hourly samples
func CrowdTrend(rng common.RandomSource) []TrendPoint {
	draw := func(span, base float64) int {
		return int(math.Floor(rng.Float64()*span + base))
	}
	points := make([]TrendPoint, 24)
	for i := range points {
		points[i] = TrendPoint{
			Hour:  fmt.Sprintf("%d:00", i),
			Gate1: draw(500, 200),
			Gate2: draw(400, 150),
			Gate3: draw(300, 100),
			Total: draw(1200, 800),
			Risk:  draw(100, 0),
		}
	}
	return points
}

// KPI is a dashboard headline card
type KPI struct {
	Label string
	Value string
	Sub   string
	Tone  Tone
}

// StaticKPIs returns the headline cards that do not depend on live state
func StaticKPIs() []KPI {
	return []KPI{
		{Label: "Active Cameras", Value: "4 / 4", Sub: "All operational", Tone: ToneSafe},
		{Label: "High Risk Zones", Value: "2", Sub: "Gate 3, Zone B", Tone: ToneDanger},
		{Label: "Guards On Duty", Value: "3", Sub: "1 on standby", Tone: ToneWarning},
	}
}
