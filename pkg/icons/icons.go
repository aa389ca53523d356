// Package icons holds the closed set of icon identifiers a step can carry
// and the terminal glyph each one renders as.
package icons

import (
	"regexp"
	"sort"
	"strings"
)

// Name identifies a step icon. The server stores it as a plain string.
type Name string

// Default is used for new steps and for names the client does not know.
const Default Name = "Star"

var glyphs = map[Name]string{
	"Star":              "★",
	"Home":              "⌂",
	"Check":             "✓",
	"Favorite":          "♥",
	"AccessAlarm":       "⏰",
	"AddCircle":         "⊕",
	"Delete":            "✗",
	"Edit":              "✎",
	"Person":            "☺",
	"Settings":          "⚙",
	"Search":            "⌕",
	"Done":              "✔",
	"Info":              "ℹ",
	"Warning":           "⚠",
	"Help":              "?",
	"DirectionsRun":     "🏃",
	"FitnessCenter":     "🏋",
	"SportsSoccer":      "⚽",
	"DirectionsBike":    "🚲",
	"Pool":              "🏊",
	"Hiking":            "🥾",
	"SportsBasketball":  "🏀",
	"SportsTennis":      "🎾",
	"SportsEsports":     "🎮",
	"SportsGolf":        "⛳",
	"SportsCricket":     "🏏",
	"SportsFootball":    "🏈",
	"SportsBaseball":    "⚾",
	"SportsVolleyball":  "🏐",
	"SportsMartialArts": "🥋",
	"EmojiEvents":       "🏆",
	"MilitaryTech":      "🎖",
	"School":            "🎓",
	"MenuBook":          "📖",
	"Book":              "📕",
	"LibraryBooks":      "📚",
	"Quiz":              "❓",
	"Assignment":        "📋",
	"Code":              "⌨",
	"Terminal":          "▮",
	"BugReport":         "🐞",
	"Build":             "🔧",
	"Computer":          "💻",
	"Calculate":         "🧮",
	"Timer":             "⏱",
	"Alarm":             "⏰",
	"HourglassEmpty":    "⌛",
	"Schedule":          "🕒",
	"CalendarToday":     "📅",
	"Event":             "🗓",
	"TrendingUp":        "📈",
	"TrendingDown":      "📉",
	"BarChart":          "📊",
	"Work":              "💼",
	"AttachMoney":       "$",
	"Savings":           "🐷",
	"AccountBalance":    "🏦",
	"TempleHindu":       "🛕",
	"Mosque":            "🕌",
	"Church":            "⛪",
	"Synagogue":         "🕍",
	"SelfImprovement":   "🧘",
	"Psychology":        "🧠",
	"HealthAndSafety":   "⛑",
	"LocalHospital":     "🏥",
}

var names []Name

func init() {
	names = make([]Name, 0, len(glyphs))
	for n := range glyphs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}

// All returns every known icon, sorted by name.
func All() []Name {
	return append([]Name(nil), names...)
}

// Valid reports whether n is a known icon.
func (n Name) Valid() bool {
	_, ok := glyphs[n]
	return ok
}

// Glyph returns the terminal rendering of n, falling back to the default icon.
func (n Name) Glyph() string {
	if g, ok := glyphs[n]; ok {
		return g
	}
	return glyphs[Default]
}

// Parse resolves a stored icon string. Unknown or empty names map to Default
// and report false.
func Parse(s string) (Name, bool) {
	n := Name(strings.TrimSpace(s))
	if n.Valid() {
		return n, true
	}
	return Default, false
}

// Search filters icons by a case-insensitive regular expression. An empty
// query returns everything; an invalid pattern matches nothing.
func Search(query string) []Name {
	query = strings.TrimSpace(query)
	if query == "" {
		return All()
	}
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil
	}
	var out []Name
	for _, n := range names {
		if re.MatchString(string(n)) {
			out = append(out, n)
		}
	}
	return out
}
