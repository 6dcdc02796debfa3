package analytics

// Level band lower bounds (inclusive).
const (
	highLevelFloor   = 4.0
	mediumLevelFloor = 2.5
)

// Level is an ordinal performance band.
type Level string

// Performance levels.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Classify maps an average score onto a Level. Each band includes its lower bound.
func Classify(average float64) Level {
	switch {
	case average >= highLevelFloor:
		return LevelHigh
	case average >= mediumLevelFloor:
		return LevelMedium
	default:
		return LevelLow
	}
}
