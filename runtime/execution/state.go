package execution

// Status represents the lifecycle state of a process
type Status string

const (
	StatusReady    Status = "ready"
	StatusBlocked  Status = "blocked"
	StatusFinished Status = "finished"
)

// IsTerminal reports whether the status can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusFinished
}
