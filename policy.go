package imprint

// policy decides what happens to a value error at a child boundary.
//
// Captures are instantiated over one of the two zero-size implementations, so
// the choice is made once at the entry point and the success path carries no
// per-node mode test. recover is only reached when a child has failed.
type policy interface {
	shortCircuit | persist
	recover(err error) (Value, bool)
}

// shortCircuit lets every error propagate and abort the capture.
type shortCircuit struct{}

func (shortCircuit) recover(error) (Value, bool) { return nil, false }

// persist turns value errors into Error leaves. Protocol and usage violations
// are defects outside the captured data and always propagate.
type persist struct{}

func (persist) recover(err error) (Value, bool) {
	if IsProtocol(err) || IsUsage(err) {
		return nil, false
	}
	return Error{Message: err.Error()}, true
}
