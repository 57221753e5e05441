package input

import "testing"

func TestKonami(t *testing.T) {
	code := []Konami{KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA}

	tests := []struct {
		name  string
		keys  []Konami
		fires []int
	}{
		{"exact", code, []int{9}},
		{"noise before", append([]Konami{KeyA, KeyOther, KeyUp}, code...), []int{12}},
		{"broken", []Konami{KeyUp, KeyUp, KeyDown, KeyOther, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA}, nil},
		{"twice", append(append([]Konami{}, code...), code...), []int{9, 19}},
		{"short", code[:9], nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewKonami()
			var fired []int
			for i, k := range tt.keys {
				if seq.Push(k) {
					fired = append(fired, i)
				}
			}
			if len(fired) != len(tt.fires) {
				t.Fatalf("fired at %v, want %v", fired, tt.fires)
			}
			for i := range fired {
				if fired[i] != tt.fires[i] {
					t.Fatalf("fired at %v, want %v", fired, tt.fires)
				}
			}
		})
	}
}

func TestSequenceReset(t *testing.T) {
	seq := NewSequence('a', 'b')
	seq.Push('a')
	seq.Reset()
	if seq.Push('b') {
		t.Error("matched across Reset")
	}
	if seq.Push('a') {
		t.Error("matched a prefix")
	}
	if !seq.Push('b') {
		t.Error("did not match a, b")
	}
}

func TestEmptySequence(t *testing.T) {
	seq := NewSequence[string]()
	if seq.Push("x") {
		t.Error("empty pattern matched")
	}
}
