package common

import (
	"strings"
	"testing"
)

func TestMakeRandBase36String_Alphabet(t *testing.T) {
	s, err := MakeRandBase36String(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 9 {
		t.Fatalf("expected 9 chars, got %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(base36Alphabet, r) {
			t.Fatalf("unexpected rune %q in %q", r, s)
		}
	}
	if strings.Contains(s, "_") {
		t.Fatalf("random segment must not contain the id separator: %q", s)
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
