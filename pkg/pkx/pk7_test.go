package pkx

import (
	"bytes"
	"errors"
	"testing"
)

func newTestPK7(t *testing.T, length int) *PK7 {
	t.Helper()
	p, err := NewPK7(make(Owned, length), Options{})
	if err != nil {
		t.Fatalf("NewPK7: %v", err)
	}
	mustSet(t, p.SetEncryptionConstant(0xDEADBEEF))
	mustSet(t, p.SetPID(0x0BADF00D))
	mustSet(t, p.SetTID(1000))
	mustSet(t, p.SetSID(2000))
	mustSet(t, p.SetSpecies(807))
	mustSet(t, p.SetLevel(50))
	mustSet(t, p.SetMove(0, 609))
	mustSet(t, p.SetRelearnMove(0, 609))
	return p
}

func TestPK7EncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{pk7BoxLength, pk7PartyLength} {
		p := newTestPK7(t, n)
		mustSet(t, p.SetStatusCondition(0x40))
		p.UpdatePartyData()
		p.RefreshChecksum()
		plain := p.Bytes()

		p.Encrypt()
		if !p.IsEncrypted() {
			t.Fatalf("len %d: encrypted record not detected", n)
		}
		if bytes.Equal(plain, p.Bytes()) {
			t.Fatalf("len %d: encryption was a no-op", n)
		}
		p.Decrypt()
		if !bytes.Equal(plain, p.Bytes()) {
			t.Fatalf("len %d: round trip mismatch", n)
		}
		if p.Species() != 807 {
			t.Fatalf("len %d: species %d", n, p.Species())
		}
	}
}

func TestPK7EncryptRefreshesChecksum(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	mustSet(t, p.SetHeldItem(50))
	p.Encrypt()
	p.Decrypt()
	if p.Checksum() != p.CalcChecksum() {
		t.Fatalf("checksum %#x, want %#x", p.Checksum(), p.CalcChecksum())
	}
}

func TestPK7HyperTrainingUsesPerfectIV(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	mustSet(t, p.SetSpecies(1))
	mustSet(t, p.SetLevel(100))
	mustSet(t, p.SetNature(0))
	if got := p.Stat(StatAtk); got != 103 {
		t.Fatalf("atk with 0 iv: got %d want 103", got)
	}
	mustSet(t, p.SetHyperTrained(StatAtk, true))
	if got := p.Stat(StatAtk); got != 134 {
		t.Fatalf("hyper trained atk: got %d want 134", got)
	}
	if p.Bytes()[0xDE] != 0x02 {
		t.Fatalf("hyper training byte: %#x", p.Bytes()[0xDE])
	}
	mustSet(t, p.SetHyperTrained(StatSpe, true))
	if p.Bytes()[0xDE] != 0x22 {
		t.Fatalf("speed uses bit 5, byte %#x", p.Bytes()[0xDE])
	}
}

func TestPK7Shiny(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	if p.Shiny() {
		t.Fatalf("fixture unexpectedly shiny")
	}
	mustSet(t, p.SetShiny(true))
	if !p.Shiny() || p.TSV() != p.PSV() {
		t.Fatalf("SetShiny(true) failed: tsv %d psv %d", p.TSV(), p.PSV())
	}
	mustSet(t, p.SetShiny(false))
	if p.Shiny() {
		t.Fatalf("SetShiny(false) failed")
	}
}

func TestPK7FriendshipFollowsHandler(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	mustSet(t, p.SetFriendship(70))
	mustSet(t, p.SetCurrentHandler(1))
	mustSet(t, p.SetFriendship(200))
	if p.Friendship() != 200 {
		t.Fatalf("handler friendship: got %d", p.Friendship())
	}
	mustSet(t, p.SetCurrentHandler(0))
	if p.Friendship() != 70 {
		t.Fatalf("ot friendship: got %d", p.Friendship())
	}
}

func TestPK7Dates(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	if p.MetDate() != Epoch {
		t.Fatalf("unset date should read as epoch, got %s", p.MetDate())
	}
	d := Date{Year: 2017, Month: 11, Day: 17}
	mustSet(t, p.SetMetDate(d))
	if p.MetDate() != d {
		t.Fatalf("met date: got %s", p.MetDate())
	}
	if b := p.Bytes(); b[0xD4] != 17 || b[0xD5] != 11 || b[0xD6] != 17 {
		t.Fatalf("met date bytes % x", b[0xD4:0xD7])
	}
	if err := p.SetEggDate(Date{Year: 1999, Month: 1, Day: 1}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected year out of range, got %v", err)
	}
	mustSet(t, p.SetMetDate(Epoch))
	if p.MetDate() != Epoch {
		t.Fatalf("clearing date failed")
	}
}

func TestPK7FieldPacking(t *testing.T) {
	t.Parallel()

	p := newTestPK7(t, pk7BoxLength)
	mustSet(t, p.SetFatefulEncounter(true))
	mustSet(t, p.SetGender(Genderless))
	mustSet(t, p.SetForm(3))
	if got := p.Bytes()[0x1D]; got != 0x1D {
		t.Fatalf("packed byte: got %#x want 0x1d", got)
	}
	if !p.FatefulEncounter() || p.Gender() != Genderless || p.Form() != 3 {
		t.Fatalf("packed fields read back wrong")
	}
	if err := p.SetGender(Male); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("zeraora is genderless, got %v", err)
	}
	if err := p.SetEV(StatHP, 253); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ev above 252 accepted")
	}
	if err := p.SetAbilityNumber(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ability number 3 accepted")
	}
	mustSet(t, p.SetAbilityNumber(4))
	mustSet(t, p.SetOTGender(Female))
	mustSet(t, p.SetMetLevel(100))
	if p.Bytes()[0xDD] != 0x80|100 {
		t.Fatalf("met level byte %#x", p.Bytes()[0xDD])
	}
}
