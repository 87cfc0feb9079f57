package store

// Status classifies the business result of a mutating operation. Expected
// outcomes (missing playlist, duplicate add, bad input) are reported here
// rather than as errors so callers can branch without error handling.
type Status int

const (
	StatusSucceeded Status = iota
	StatusNotFound
	StatusAlreadyExists
	StatusInvalidInput
	StatusTransientFailure
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusNotFound:
		return "not_found"
	case StatusAlreadyExists:
		return "already_exists"
	case StatusInvalidInput:
		return "invalid_input"
	case StatusTransientFailure:
		return "transient_failure"
	}
	return "unknown"
}

// Outcome reports how a mutating operation ended. Callers branch on Status;
// Message is display text only.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func succeeded(message string) Outcome {
	return Outcome{Status: StatusSucceeded, Message: message}
}

func notFound(message string) Outcome {
	return Outcome{Status: StatusNotFound, Message: message}
}

func alreadyExists(message string) Outcome {
	return Outcome{Status: StatusAlreadyExists, Message: message}
}

func invalidInput(message string) Outcome {
	return Outcome{Status: StatusInvalidInput, Message: message}
}
