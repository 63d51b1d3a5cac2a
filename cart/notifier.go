package cart

import "sync"

// notifier fans change signals out to per-owner watchers. Each watcher
// channel has a buffer of one and sends never block: a signal arriving
// while one is already pending is dropped, which is fine because
// watchers re-read the full item list on wake-up.
type notifier struct {
	mu       sync.Mutex
	nextID   int
	watchers map[string]map[int]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{watchers: make(map[string]map[int]chan struct{})}
}

func (n *notifier) watch(owner string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan struct{}, 1)
	if n.watchers[owner] == nil {
		n.watchers[owner] = make(map[int]chan struct{})
	}
	n.watchers[owner][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if owned := n.watchers[owner]; owned != nil {
			delete(owned, id)
			if len(owned) == 0 {
				delete(n.watchers, owner)
			}
		}
	}
	return ch, cancel
}

func (n *notifier) broadcast(owner string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.watchers[owner] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
