package detect

// Strategy names the signal that classified a text as a candidate.
type Strategy int

const (
	StrategyNone        Strategy = iota
	StrategyContiguous           // unbroken run of dictionary words
	StrategyDenseWindow          // window with at most 10% non-dictionary tokens
	StrategyDensity              // dictionary words make up half the text
)

var strategyNames = map[Strategy]string{
	StrategyNone:        "none",
	StrategyContiguous:  "contiguous",
	StrategyDenseWindow: "dense_window",
	StrategyDensity:     "density",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}
