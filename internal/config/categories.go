package config

// CategoryWeights orders command categories in help output; lower comes first.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"📢 Utilities":    10,
	"🎲 Gameplay":     20,
	"🛡️ Moderation":  30,
	"🛠️ Maintenance": 60,
}

// CategoryWeight returns the weight of a category, unknown ones sort last.
func CategoryWeight(category string) int {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return 1000
}
