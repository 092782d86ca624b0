package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"danger":    {"🔴", "[!!]"},
	"warning":   {"⚠️", "[WRN]"},
	"safe":      {"✅", "[OK]"},
	"info":      {"🔵", "[INF]"},
	"emergency": {"🚨", "[SOS]"},
	"power":     {"⚡", "[PWR]"},
	"stop":      {"🛑", "[OFF]"},
	"brain":     {"🧠", "[AI]"},
	"live":      {"🟢", "[LIVE]"},
	"rec":       {"⏺", "[REC]"},
	"people":    {"👥", "[PPL]"},
	"route":     {"🧭", "[->]"},
	"phone":     {"📞", "[TEL]"},
	"upload":    {"📤", "[UP]"},
	"stream":    {"📡", "[RTSP]"},
	"check":     {"✔", "[x]"},
	"arrow":     {"▶", ">"},

	// navigation icons, one per view
	"dashboard": {"📊", "[DSH]"},
	"cameras":   {"📹", "[CAM]"},
	"priority":  {"👪", "[PRI]"},
	"security":  {"🔐", "[SEC]"},
	"guards":    {"👮", "[GRD]"},
	"alerts":    {"🔔", "[ALR]"},
	"demo":      {"🎬", "[VID]"},

	// security stack
	"lock":   {"🔒", "[L1]"},
	"shield": {"🛡", "[L2]"},
	"robot":  {"🤖", "[L3]"},
	"key":    {"🔐", "[L4]"},
	"disk":   {"💾", "[L6]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}
