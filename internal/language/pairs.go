package language

// Pair направление перевода
type Pair struct {
	From string
	To   string
}

var commonPairs = []Pair{
	{From: "en", To: "es"},
	{From: "en", To: "fr"},
	{From: "en", To: "de"},
	{From: "en", To: "it"},
	{From: "en", To: "pt"},
	{From: "es", To: "en"},
	{From: "fr", To: "en"},
	{From: "de", To: "en"},
}

// CommonPairs returns the frequently used translation directions
func CommonPairs() []Pair {
	out := make([]Pair, len(commonPairs))
	copy(out, commonPairs)
	return out
}
