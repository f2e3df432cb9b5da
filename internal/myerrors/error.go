package myerrors

// ValidationError means the input itself is malformed or out of range.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BusinessRuleError means the input is well-formed but the current state
// of the mission, target or note forbids the operation.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError means the operation lost to an already existing row,
// e.g. a second note for the same target.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
