package input

// Sequence detects a fixed pattern at the tail of a key stream.
type Sequence[K comparable] struct {
	pattern []K
	recent  []K
}

func NewSequence[K comparable](pattern ...K) *Sequence[K] {
	return &Sequence[K]{
		pattern: pattern,
		recent:  make([]K, 0, len(pattern)),
	}
}

// Push records k and reports whether the last keys now match the pattern.
// The window is cleared after a match so a pattern fires once per entry.
func (s *Sequence[K]) Push(k K) bool {
	if len(s.pattern) == 0 {
		return false
	}
	if len(s.recent) == len(s.pattern) {
		copy(s.recent, s.recent[1:])
		s.recent = s.recent[:len(s.recent)-1]
	}
	s.recent = append(s.recent, k)

	if len(s.recent) != len(s.pattern) {
		return false
	}
	for i := range s.pattern {
		if s.recent[i] != s.pattern[i] {
			return false
		}
	}
	s.recent = s.recent[:0]
	return true
}

func (s *Sequence[K]) Reset() {
	s.recent = s.recent[:0]
}

// Konami names the keys of the ↑↑↓↓←→←→BA code independently of any backend.
type Konami int

const (
	KeyOther Konami = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyB
	KeyA
)

func NewKonami() *Sequence[Konami] {
	return NewSequence(KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA)
}
