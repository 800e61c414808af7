package service

import "sync"

// notifier 简单的观察者列表，回调在锁外按订阅顺序执行
type notifier[T any] struct {
	mu    sync.Mutex
	next  int
	order []int
	subs  map[int]func(T)
}

func (n *notifier[T]) subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[int]func(T))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	n.order = append(n.order, id)
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			for i, existing := range n.order {
				if existing == id {
					n.order = append(n.order[:i], n.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (n *notifier[T]) publish(value T) {
	n.mu.Lock()
	fns := make([]func(T), 0, len(n.order))
	for _, id := range n.order {
		fns = append(fns, n.subs[id])
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}
