package generator

import "testing"

func TestGenerateThenVerifyRoundTrips(t *testing.T) {
	g := NewPRNGGenerator(42)

	const size = 256
	buf := make([]byte, size)
	g.Generate(size, "object-0", 0, &buf)

	scratch := make([]byte, size)
	if err := g.Verify(size, "object-0", &buf, &scratch); err != nil {
		t.Fatalf("Verify failed on freshly generated payload: %v", err)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	g := NewPRNGGenerator(42)

	const size = 256
	buf := make([]byte, size)
	g.Generate(size, "object-0", 0, &buf)

	buf[size-1] ^= 0xFF

	scratch := make([]byte, size)
	if err := g.Verify(size, "object-0", &buf, &scratch); err == nil {
		t.Fatalf("expected Verify to reject a corrupted payload")
	}
}

func TestVerifyDetectsWrongSize(t *testing.T) {
	g := NewPRNGGenerator(1)

	buf := make([]byte, 64)
	scratch := make([]byte, 64)
	if err := g.Verify(128, "object-0", &buf, &scratch); err == nil {
		t.Fatalf("expected Verify to reject a buffer of the wrong size")
	}
}

func TestDifferentCyclesProduceDifferentPayloads(t *testing.T) {
	g := NewPRNGGenerator(7)

	const size = 128
	first := make([]byte, size)
	second := make([]byte, size)

	g.Generate(size, "object-0", 0, &first)
	g.Generate(size, "object-0", 1, &second)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different cycles to produce different payloads")
	}
}
