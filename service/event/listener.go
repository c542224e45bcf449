package event

// Listener receives published events synchronously
type Listener func(event *Event)

// Recorder is a listener that keeps every event it receives
type Recorder struct {
	Events []*Event
}

// Listen records event
func (r *Recorder) Listen(event *Event) {
	r.Events = append(r.Events, event)
}

// Kinds returns recorded event kinds in publish order
func (r *Recorder) Kinds() []Kind {
	var ret = make([]Kind, 0, len(r.Events))
	for _, event := range r.Events {
		ret = append(ret, event.Kind)
	}
	return ret
}

// Filter returns recorded events of the given kind
func (r *Recorder) Filter(kind Kind) []*Event {
	var ret []*Event
	for _, event := range r.Events {
		if event.Kind == kind {
			ret = append(ret, event)
		}
	}
	return ret
}
