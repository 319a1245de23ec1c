package validation

// Constraints carries the numeric bounds every field rule checks against.
// It is injected through NewValidator rather than read from package state so
// callers (and tests) can run alternate scales side by side.
type Constraints struct {
	MarkMin       float64
	MarkMax       float64
	MarkPrecision int
	LevelMin      int
	LevelMax      int
	APSMin        int
	APSMax        int
	TextMaxLen    int
}

// DefaultConstraints returns the NSC bounds: percentage marks kept to two
// decimals, 0-7 achievement levels, a 0-42 admission point scale and
// 255-character free-text descriptors.
func DefaultConstraints() Constraints {
	return Constraints{
		MarkMin:       0,
		MarkMax:       100,
		MarkPrecision: 2,
		LevelMin:      0,
		LevelMax:      7,
		APSMin:        0,
		APSMax:        42,
		TextMaxLen:    255,
	}
}
