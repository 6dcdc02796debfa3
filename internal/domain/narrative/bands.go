package narrative

// Support band boundaries on the overall current average.
const (
	highSupportBelow  = 2.5
	mediumSupportUpTo = 3.5
)

// SupportNeed is how much adult support a learner currently needs.
type SupportNeed string

// Support needs.
const (
	SupportHigh   SupportNeed = "high"
	SupportMedium SupportNeed = "medium"
	SupportLow    SupportNeed = "low"
)

var supportMessages = map[SupportNeed]string{
	SupportHigh:   "{name} needs high support: plan daily 15-20 minute practice sessions on the focus skills",
	SupportMedium: "{name} needs medium support: practice the focus skills 3-4 times per week",
	SupportLow:    "{name} needs low support: keep up regular maintenance activities",
}

// SupportBand maps the overall current average to a support need.
func SupportBand(current float64) SupportNeed {
	switch {
	case current < highSupportBelow:
		return SupportHigh
	case current <= mediumSupportUpTo:
		return SupportMedium
	default:
		return SupportLow
	}
}

// SupportMessage returns the recommendation template for a support need.
func SupportMessage(need SupportNeed) string {
	if msg, ok := supportMessages[need]; ok {
		return msg
	}
	return supportMessages[SupportMedium]
}

// Band is the overall performance band used by the suggestion summary.
type Band int

// Overall bands, from strongest to weakest.
const (
	BandAdvanced Band = iota
	BandProficient
	BandDeveloping
	BandEmerging
)

var bandNames = [...]string{
	BandAdvanced:   "advanced",
	BandProficient: "proficient",
	BandDeveloping: "developing",
	BandEmerging:   "emerging",
}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return "unknown"
	}
	return bandNames[b]
}

var overallTemplates = [...]string{
	BandAdvanced:   "{name} shows advanced fine-motor skills (average {average}). Keep offering challenging activities to sustain progress.",
	BandProficient: "{name} shows solid fine-motor skills (average {average}). Targeted practice on the weakest skills will round out development.",
	BandDeveloping: "{name} is developing fine-motor skills (average {average}). Regular structured practice is recommended.",
	BandEmerging:   "{name} shows emerging fine-motor skills (average {average}). Daily guided practice with close support is recommended.",
}

// OverallBand maps an overall average to a band: >=4, >=3, >=2, else emerging.
func OverallBand(avg float64) Band {
	switch {
	case avg >= 4:
		return BandAdvanced
	case avg >= 3:
		return BandProficient
	case avg >= 2:
		return BandDeveloping
	default:
		return BandEmerging
	}
}

// OverallTemplate returns the overall recommendation template for a band.
func OverallTemplate(b Band) string {
	if b < 0 || int(b) >= len(overallTemplates) {
		return overallTemplates[BandEmerging]
	}
	return overallTemplates[b]
}
