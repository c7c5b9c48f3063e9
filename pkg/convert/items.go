package convert

// ItemGen2ToGen3 maps the gen 2 item codes a gen 1 catch rate byte can hold
// when traded forward. Codes missing here have no gen 3 equivalent.
var ItemGen2ToGen3 = map[uint16]uint16{
	0x01: 1,   // master ball
	0x02: 2,   // ultra ball
	0x03: 179, // bright powder
	0x04: 3,   // great ball
	0x05: 4,   // poke ball
	0x09: 14,  // antidote
	0x0A: 15,  // burn heal
	0x0B: 16,  // ice heal
	0x0C: 17,  // awakening
	0x0D: 18,  // paralyze heal
	0x0E: 19,  // full restore
	0x0F: 20,  // max potion
	0x10: 21,  // hyper potion
	0x11: 22,  // super potion
	0x12: 13,  // potion
	0x1A: 63,  // hp up
	0x1B: 64,  // protein
	0x1C: 65,  // iron
	0x1D: 66,  // carbos
	0x1E: 222, // lucky punch
	0x1F: 67,  // calcium
	0x20: 68,  // rare candy
}

// ItemGen3ToNational maps gen 3 item codes to the national item ids used from
// gen 4 on. It is filled from gen3ItemRanges.
var ItemGen3ToNational = map[uint16]uint16{}

type itemRange struct {
	first, last uint16 // inclusive, gen 3 codes
	national    uint16 // national id of first
}

var gen3ItemRanges = []itemRange{
	{1, 12, 1},      // balls
	{13, 38, 17},    // medicine
	{44, 44, 43},    // berry juice
	{45, 45, 44},    // sacred ash
	{63, 71, 45},    // vitamins, rare candy, pp items
	{93, 98, 80},    // evolution stones
	{133, 167, 149}, // berries
	{168, 175, 201}, // contest berries
	{179, 225, 213}, // held items
	{289, 338, 328}, // tm01-tm50
	{339, 346, 420}, // hm01-hm08
}

func init() {
	for _, r := range gen3ItemRanges {
		for i := r.first; i <= r.last; i++ {
			ItemGen3ToNational[i] = r.national + (i - r.first)
		}
	}
}
