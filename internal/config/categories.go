package config

// CategoryWeights orders command categories in help output, lightest first.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🎵 Music":        10,
}
