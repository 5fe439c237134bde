package orderreaderv1

// DecodeError marks a command payload that can never be processed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "malformed order command: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
