package event

// Publisher fans events out to listeners in registration order. It is not
// safe for concurrent use; the scheduler publishes from a single goroutine.
type Publisher struct {
	listeners []Listener
	runID     string
	seq       int
}

// NewPublisher creates a publisher
func NewPublisher(opts ...Option) *Publisher {
	ret := &Publisher{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Subscribe adds listeners, nil listeners are ignored
func (p *Publisher) Subscribe(listeners ...Listener) {
	for _, listener := range listeners {
		if listener != nil {
			p.listeners = append(p.listeners, listener)
		}
	}
}

// Publish assigns the next sequence number to event and delivers it
func (p *Publisher) Publish(event *Event) {
	if event == nil {
		return
	}
	p.seq++
	event.Seq = p.seq
	if event.RunID == "" {
		event.RunID = p.runID
	}
	for _, listener := range p.listeners {
		listener(event)
	}
}

// Published returns the number of published events
func (p *Publisher) Published() int {
	return p.seq
}
