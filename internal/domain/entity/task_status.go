package entity

// Status is the lifecycle stage of a task. A task is always in exactly one
// stage; the wire format and the storage layer expand it into four boolean
// flags for compatibility with older data.
type Status string

const (
	StatusNew       Status = "newTask"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ParseStatus maps a status name to a Status. Unrecognized names fall back to
// StatusNew, reported via ok=false.
func ParseStatus(s string) (st Status, ok bool) {
	switch Status(s) {
	case StatusNew, StatusActive, StatusCompleted, StatusFailed:
		return Status(s), true
	default:
		return StatusNew, false
	}
}

func (s Status) String() string { return string(s) }

// Flags expands a Status into its boolean-flag representation.
func (s Status) Flags() StatusFlags {
	return StatusFlags{
		NewTask:   s == StatusNew,
		Active:    s == StatusActive,
		Completed: s == StatusCompleted,
		Failed:    s == StatusFailed,
	}
}

// StatusFlags is the raw four-flag representation found in stored rows and in
// status-update requests. Stored rows written before the single-status model
// may hold zero or multiple true flags.
type StatusFlags struct {
	NewTask   bool `json:"newTask"`
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
	Failed    bool `json:"failed"`
}

// TrueCount reports how many flags are set.
func (f StatusFlags) TrueCount() int {
	n := 0
	for _, b := range []bool{f.NewTask, f.Active, f.Completed, f.Failed} {
		if b {
			n++
		}
	}
	return n
}

// Normalize collapses a possibly-conflicting flag set into a single status.
// Conflicts resolve by priority completed > failed > active > newTask; an
// empty flag set resolves to newTask. changed reports whether the input
// violated mutual exclusivity.
func (f StatusFlags) Normalize() (st Status, changed bool) {
	if f.TrueCount() == 1 {
		switch {
		case f.Completed:
			return StatusCompleted, false
		case f.Failed:
			return StatusFailed, false
		case f.Active:
			return StatusActive, false
		default:
			return StatusNew, false
		}
	}
	switch {
	case f.Completed:
		return StatusCompleted, true
	case f.Failed:
		return StatusFailed, true
	case f.Active:
		return StatusActive, true
	default:
		return StatusNew, true
	}
}

// IntentStatus resolves an employee self-update request into a status.
// Unlike conflict repair, the priority here is active > newTask > completed >
// failed: when a caller sets a single intended flag this picks it, and when a
// request is ambiguous the earlier stages win. An empty request defaults to
// newTask.
func IntentStatus(f StatusFlags) Status {
	switch {
	case f.Active:
		return StatusActive
	case f.NewTask:
		return StatusNew
	case f.Completed:
		return StatusCompleted
	case f.Failed:
		return StatusFailed
	default:
		return StatusNew
	}
}
