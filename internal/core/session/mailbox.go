package session

import "sync"

// mailbox delivers events to one subscriber in order without blocking the producer.
type mailbox struct {
	mu     sync.Mutex
	queue  []Event
	notify chan struct{}
	out    chan Event
	done   chan struct{}
	closed bool
}

func newMailbox(buffer int) *mailbox {
	box := &mailbox{
		notify: make(chan struct{}, 1),
		out:    make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go box.run()
	return box
}

func (box *mailbox) push(event Event) {
	box.mu.Lock()
	if box.closed {
		box.mu.Unlock()
		return
	}
	box.queue = append(box.queue, event)
	box.mu.Unlock()

	select {
	case box.notify <- struct{}{}:
	default:
	}
}

func (box *mailbox) close() {
	box.mu.Lock()
	defer box.mu.Unlock()
	if box.closed {
		return
	}
	box.closed = true
	close(box.done)
}

func (box *mailbox) run() {
	defer close(box.out)
	for {
		select {
		case <-box.done:
			return
		case <-box.notify:
		}

		for {
			event, ok := box.pop()
			if !ok {
				break
			}
			select {
			case box.out <- event:
			case <-box.done:
				return
			}
		}
	}
}

func (box *mailbox) pop() (Event, bool) {
	box.mu.Lock()
	defer box.mu.Unlock()
	if len(box.queue) == 0 {
		return Event{}, false
	}
	event := box.queue[0]
	box.queue[0] = Event{}
	box.queue = box.queue[1:]
	return event, true
}
