package personal

// Growth rates in game data order.
const (
	GrowthMediumFast uint8 = iota
	GrowthErratic
	GrowthFluctuating
	GrowthMediumSlow
	GrowthFast
	GrowthSlow

	GrowthRateCount
)

// MaxLevel is the highest reachable level.
const MaxLevel = 100

var expTable [GrowthRateCount][MaxLevel + 1]uint32

func init() {
	for rate := uint8(0); rate < GrowthRateCount; rate++ {
		for lvl := 2; lvl <= MaxLevel; lvl++ {
			expTable[rate][lvl] = expFormula(rate, int64(lvl))
		}
	}
}

func expFormula(rate uint8, n int64) uint32 {
	n3 := n * n * n
	var v int64
	switch rate {
	case GrowthErratic:
		switch {
		case n < 50:
			v = n3 * (100 - n) / 50
		case n < 68:
			v = n3 * (150 - n) / 100
		case n < 98:
			v = n3 * ((1911 - 10*n) / 3) / 500
		default:
			v = n3 * (160 - n) / 100
		}
	case GrowthFluctuating:
		switch {
		case n < 15:
			v = n3 * ((n+1)/3 + 24) / 50
		case n < 36:
			v = n3 * (n + 14) / 50
		default:
			v = n3 * (n/2 + 32) / 50
		}
	case GrowthMediumSlow:
		v = 6*n3/5 - 15*n*n + 100*n - 140
	case GrowthFast:
		v = 4 * n3 / 5
	case GrowthSlow:
		v = 5 * n3 / 4
	default:
		v = n3
	}
	if v < 0 {
		return 0
	}
	return uint32(v)
}

// ExpForLevel returns the minimum experience for level. Levels outside 1..100
// are clamped; unknown rates use medium-fast.
func ExpForLevel(rate uint8, level uint8) uint32 {
	if rate >= GrowthRateCount {
		rate = GrowthMediumFast
	}
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return expTable[rate][level]
}

// LevelForExp returns the level reached with exp experience points.
func LevelForExp(rate uint8, exp uint32) uint8 {
	if rate >= GrowthRateCount {
		rate = GrowthMediumFast
	}
	lvl := uint8(1)
	for lvl < MaxLevel && exp >= expTable[rate][lvl+1] {
		lvl++
	}
	return lvl
}

// MaxExp is the experience needed for level 100.
func MaxExp(rate uint8) uint32 {
	return ExpForLevel(rate, MaxLevel)
}
