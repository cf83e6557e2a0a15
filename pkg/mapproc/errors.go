package mapproc

import "fmt"

// RegistrationError reports a failed processor registration.
type RegistrationError struct {
	// Name is the processor name passed to Register.
	Name string

	// Message describes why registration failed.
	Message string
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("map processor registration failed: %s", e.Message)
	}
	return fmt.Sprintf("failed to register map processor %q: %s", e.Name, e.Message)
}

// InstantiationError reports a failed instance construction. After this
// error is returned no partially built instance remains reachable.
type InstantiationError struct {
	// Proc is the name of the processor being instantiated.
	Proc string

	// Cause is the error returned by the processor's instantiate hook.
	Cause error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate map processor %q: %v", e.Proc, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *InstantiationError) Unwrap() error {
	return e.Cause
}
