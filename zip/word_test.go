package zip

import "testing"

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		tag   Tag
		value int
	}{
		{REF, 0},
		{STR, MaxGlobalAddr},
		{CONS, 17},
		{FUNC, 16_777_215},
	}
	for _, tt := range tests {
		w := Pack(tt.tag, tt.value)
		if got := w.Tag(); got != tt.tag {
			t.Errorf("Pack(%v,%d).Tag() = %v, want %v", tt.tag, tt.value, got, tt.tag)
		}
		if got := w.Value(); got != tt.value {
			t.Errorf("Pack(%v,%d).Value() = %d, want %d", tt.tag, tt.value, got, tt.value)
		}
	}
}

func TestPackTruncatesValue(t *testing.T) {
	w := Pack(REF, 0x01FF_FFFF) // one bit beyond the 24-bit value field
	if got, want := w.Value(), 0x00FF_FFFF; got != want {
		t.Errorf("Value() = %#x, want %#x (silent truncation)", got, want)
	}
}

func TestHasTag(t *testing.T) {
	w := Pack(CONS, 3)
	if !w.HasTag(CONS) {
		t.Errorf("HasTag(CONS) = false, want true")
	}
	if w.HasTag(STR) {
		t.Errorf("HasTag(STR) = true, want false")
	}
}
