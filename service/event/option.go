package event

type Option func(p *Publisher)

// WithListener registers listeners with the publisher
func WithListener(listeners ...Listener) Option {
	return func(p *Publisher) {
		p.Subscribe(listeners...)
	}
}

// WithRunID stamps every published event with runID
func WithRunID(runID string) Option {
	return func(p *Publisher) {
		p.runID = runID
	}
}
