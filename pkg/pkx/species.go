package pkx

var (
	gen1National [152]uint8
	gen3National [387]uint16
)

func init() {
	for idx, n := range gen1Internal {
		if n != 0 {
			gen1National[n] = uint8(idx)
		}
	}
	for i := uint16(1); i <= 251; i++ {
		gen3National[i] = i
	}
	for i, n := range gen3Hoenn {
		gen3National[n] = uint16(gen3HoennBase + i)
	}
}

const gen3HoennBase = 277

// Gen1ToNational returns 0 for indices that do not name a species.
func Gen1ToNational(idx uint8) uint16 { return gen1Internal[idx] }

// NationalToGen1 returns 0 for species outside the gen 1 dex.
func NationalToGen1(species uint16) uint8 {
	if int(species) >= len(gen1National) {
		return 0
	}
	return gen1National[species]
}

// Gen3ToNational maps a gen 3 internal species index. Placeholder indices
// map to 0.
func Gen3ToNational(idx uint16) uint16 {
	switch {
	case idx <= 251:
		return idx
	case idx < gen3HoennBase:
		return 0
	case int(idx-gen3HoennBase) < len(gen3Hoenn):
		return gen3Hoenn[idx-gen3HoennBase]
	}
	return 0
}

// NationalToGen3 returns 0 for species outside the gen 3 dex.
func NationalToGen3(species uint16) uint16 {
	if int(species) >= len(gen3National) {
		return 0
	}
	return gen3National[species]
}

// Gen 1 type codes as stored in records and personal rows.
const (
	Gen1TypeNormal   uint8 = 0x00
	Gen1TypeFighting uint8 = 0x01
	Gen1TypeFlying   uint8 = 0x02
	Gen1TypePoison   uint8 = 0x03
	Gen1TypeGround   uint8 = 0x04
	Gen1TypeRock     uint8 = 0x05
	Gen1TypeBug      uint8 = 0x07
	Gen1TypeGhost    uint8 = 0x08
	Gen1TypeFire     uint8 = 0x14
	Gen1TypeWater    uint8 = 0x15
	Gen1TypeGrass    uint8 = 0x16
	Gen1TypeElectric uint8 = 0x17
	Gen1TypePsychic  uint8 = 0x18
	Gen1TypeIce      uint8 = 0x19
	Gen1TypeDragon   uint8 = 0x1A
)
