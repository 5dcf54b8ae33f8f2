package objmap

import "fmt"

// MarshalError represents an error while converting a value to a tag tree.
type MarshalError struct {
	FieldPath string // e.g. "player.inventory[3].id"
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error while converting a tag tree to a value.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError represents a kind mismatch between a tag node and the target
// type branch it is being converted to. Mismatches are never coerced: the
// tree and the target disagree on schema, so conversion stops.
type TypeError struct {
	FieldPath string
	Expected  string
	Actual    string
	Message   string
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("type error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}
