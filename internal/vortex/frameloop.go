package vortex

import "sync"

// FrameLoop is a host-driven Scheduler. The host calls Tick once per display
// refresh and every current subscriber runs once, in subscription order.
type FrameLoop struct {
	mu     sync.Mutex
	nextID int
	order  []int
	subs   map[int]func()
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{subs: make(map[int]func())}
}

func (l *FrameLoop) Subscribe(fn func()) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.order = append(l.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *FrameLoop) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.subs, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Tick runs the subscribers registered when it was called and returns how many
// ran. A subscriber cancelled by an earlier callback in the same tick is skipped.
func (l *FrameLoop) Tick() int {
	l.mu.Lock()
	ids := append([]int(nil), l.order...)
	l.mu.Unlock()

	ran := 0
	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.subs[id]
		l.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}

func (l *FrameLoop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
