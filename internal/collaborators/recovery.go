package collaborators

import "fmt"

// ThrownError is a collaborator panic turned into an ordinary failure
type ThrownError struct {
	Value interface{}
}

func (e *ThrownError) Error() string {
	return fmt.Sprintf("Thrown error: %s", thrownMessage(e.Value))
}

// Unwrap exposes a panicked error value
func (e *ThrownError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func thrownMessage(v interface{}) string {
	switch t := v.(type) {
	case error:
		return t.Error()
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// recoverThrown must be deferred directly by the calling slot method
func recoverThrown(err *error) {
	if recovered := recover(); recovered != nil {
		*err = &ThrownError{Value: recovered}
	}
}
