package dice

import "go.uber.org/zap"

// Roller wraps a Source and a logger so every roll leaves an audit trail.
// All rolls are logged at debug level with the dice notation, the individual
// face values, and the total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls d and logs the result.
//
// Postcondition: returns the sorted face values; the roll is logged.
func (r *Roller) Roll(d Dice) []int {
	faces := Roll(d, r.src)
	r.logger.Debug("dice roll",
		zap.String("dice", d.String()),
		zap.Ints("faces", faces),
		zap.Int("total", Sum(faces)),
	)
	return faces
}

// RollModified rolls d, applies the modifiers in order, and logs both the raw
// and surviving face values.
//
// Postcondition: returns the surviving values, sorted ascending.
func (r *Roller) RollModified(d Dice, mods ...Modifier) []int {
	faces := Roll(d, r.src)
	kept := faces
	for _, m := range mods {
		kept = m.Apply(kept)
	}
	r.logger.Debug("dice roll",
		zap.String("dice", d.String()),
		zap.Ints("faces", faces),
		zap.Ints("kept", kept),
		zap.Int("total", Sum(kept)),
	)
	return kept
}
