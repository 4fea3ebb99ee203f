package wxcode

// Coverage is the areal coverage or probability code of a weather group.
type Coverage string

const (
	CoverageNone   Coverage = "none"
	CoveragePatchy Coverage = "Patchy"
	CoverageAreas  Coverage = "Areas"
	CoverageBrf    Coverage = "Brf"
	CoverageInter  Coverage = "Inter"
	CoveragePds    Coverage = "Pds"
	CoverageOcnl   Coverage = "Ocnl"
	CoverageFrq    Coverage = "Frq"
	CoverageIso    Coverage = "Iso"
	CoverageSChc   Coverage = "SChc"
	CoverageSct    Coverage = "Sct"
	CoverageChc    Coverage = "Chc"
	CoverageNum    Coverage = "Num"
	CoverageLkly   Coverage = "Lkly"
	CoverageWide   Coverage = "Wide"
	CoverageDef    Coverage = "Def"
)

// Intensity is the intensity code of a weather group.
type Intensity string

const (
	IntensityNone      Intensity = "none"
	IntensityVeryLight Intensity = "--"
	IntensityLight     Intensity = "-"
	IntensityModerate  Intensity = "m"
	IntensityHeavy     Intensity = "+"
)

// Type is the weather type code of a weather group.
type Type string

const (
	TypeNone            Type = "none"
	TypeFog             Type = "F"
	TypeBlowingSnow     Type = "BS"
	TypeBlowingDust     Type = "BD"
	TypeBlowingSand     Type = "BN"
	TypeHaze            Type = "H"
	TypeSmoke           Type = "K"
	TypeFrost           Type = "FR"
	TypeVolcanicAsh     Type = "VA"
	TypeDrizzle         Type = "L"
	TypeRainShowers     Type = "RW"
	TypeRain            Type = "R"
	TypeIceCrystals     Type = "IC"
	TypeIceFog          Type = "IF"
	TypeSnowShowers     Type = "SW"
	TypeSnow            Type = "S"
	TypeIcePellets      Type = "IP"
	TypeFreezingFog     Type = "ZF"
	TypeFreezingSpray   Type = "ZY"
	TypeFreezingDrizzle Type = "ZL"
	TypeFreezingRain    Type = "ZR"
	TypeThunderstorms   Type = "T"
	TypeWaterspouts     Type = "WP"
)

// Rank tables, lowest first. Dominance compares ranks, so the order of each
// slice is the rule.
var (
	coverageOrder = []Coverage{
		CoverageNone, CoveragePatchy, CoverageAreas, CoverageBrf, CoverageInter,
		CoveragePds, CoverageOcnl, CoverageFrq, CoverageIso, CoverageSChc,
		CoverageSct, CoverageChc, CoverageNum, CoverageLkly, CoverageWide, CoverageDef,
	}
	intensityOrder = []Intensity{
		IntensityNone, IntensityVeryLight, IntensityLight, IntensityModerate, IntensityHeavy,
	}
	typeOrder = []Type{
		TypeNone, TypeFog, TypeBlowingSnow, TypeBlowingDust, TypeBlowingSand,
		TypeHaze, TypeSmoke, TypeFrost, TypeVolcanicAsh, TypeDrizzle,
		TypeRainShowers, TypeRain, TypeIceCrystals, TypeIceFog, TypeSnowShowers,
		TypeSnow, TypeIcePellets, TypeFreezingFog, TypeFreezingSpray,
		TypeFreezingDrizzle, TypeFreezingRain, TypeThunderstorms, TypeWaterspouts,
	}

	coverageRank  = rankTable(coverageOrder)
	intensityRank = rankTable(intensityOrder)
	typeRank      = rankTable(typeOrder)
)

func rankTable[T comparable](order []T) map[T]int {
	ranks := make(map[T]int, len(order))
	for i, v := range order {
		ranks[v] = i
	}
	return ranks
}

// Coverages returns the coverage vocabulary in rank order.
func Coverages() []Coverage { return append([]Coverage(nil), coverageOrder...) }

// Intensities returns the intensity vocabulary in rank order.
func Intensities() []Intensity { return append([]Intensity(nil), intensityOrder...) }

// Types returns the weather type vocabulary in rank order.
func Types() []Type { return append([]Type(nil), typeOrder...) }

func (c Coverage) Rank() int  { return coverageRank[c] }
func (i Intensity) Rank() int { return intensityRank[i] }
func (t Type) Rank() int      { return typeRank[t] }

// absent lists the tokens that encode a missing field.
var absent = map[string]bool{
	"":          true,
	"none":      true,
	"<None>":    true,
	"<NoCov>":   true,
	"<NoWx>":    true,
	"<NoInten>": true,
	"<NoVis>":   true,
	"<NoAttr>":  true,
}
