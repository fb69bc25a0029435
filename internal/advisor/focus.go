package advisor

// Focus areas per investment goal. Rotated by the user's advice count so
// consecutive generations emphasise different angles.
var focusAreas = map[string][]string{
	"retirement": {"long-term wealth building", "retirement planning", "pension optimization"},
	"wealth":     {"wealth accumulation", "portfolio diversification", "high-growth investments"},
	"education":  {"education funding", "systematic investment for education", "tax-efficient education savings"},
	"home":       {"real estate investment", "mortgage planning", "down payment strategies"},
	"other":      {"financial independence", "passive income streams", "balanced portfolio management"},
}

func FocusAreaFor(goal string, adviceCount int) string {
	areas, exists := focusAreas[goal]
	if !exists {
		areas = focusAreas["other"]
	}
	return areas[adviceCount%len(areas)]
}
