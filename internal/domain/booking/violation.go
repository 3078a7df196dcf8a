package booking

import "errors"

// ConstraintViolation is the domain's only error family. Recoverable means
// the engine already corrected the offending field and the operation went
// through; callers surface the message as a warning. Non-recoverable means
// the operation was rejected and the booking is untouched.
//
// Infrastructure failures are never expressed as ConstraintViolation.
type ConstraintViolation struct {
	Recoverable bool
	Message     string
}

func (v *ConstraintViolation) Error() string {
	return v.Message
}

func NewRecoverableViolation(message string) *ConstraintViolation {
	return &ConstraintViolation{Recoverable: true, Message: message}
}

func NewBlockingViolation(message string) *ConstraintViolation {
	return &ConstraintViolation{Recoverable: false, Message: message}
}

// AsConstraintViolation unwraps err into a ConstraintViolation if it is one.
func AsConstraintViolation(err error) (*ConstraintViolation, bool) {
	var v *ConstraintViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
