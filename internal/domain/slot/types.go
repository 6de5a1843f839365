package slot

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusReserved  Status = "RESERVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusOpen:      {StatusReserved, StatusExpired, StatusCancelled},
	StatusReserved:  {StatusConfirmed, StatusOpen, StatusExpired},
	StatusConfirmed: {StatusOpen, StatusExpired},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusReserved, StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsLive reports whether a booking currently holds the slot.
func (s Status) IsLive() bool {
	return s == StatusReserved || s == StatusConfirmed
}

// Blocks reports whether the slot occupies its interval for materialization purposes.
func (s Status) Blocks() bool {
	return s == StatusOpen || s.IsLive()
}

// Deletable statuses are removed by the sweeper once the slot has started.
func (s Status) Deletable() bool {
	return s == StatusOpen || s == StatusExpired || s == StatusCancelled
}
