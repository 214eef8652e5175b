package accounts

import "fmt"

// Ref identifies an account either by its chart code or by its stored ID.
// Call sites construct the tagged form once; readers never re-interpret a
// bare string.
type Ref struct {
	code string
	id   string
}

// ByCode references an account by its chart code, e.g. "1101".
func ByCode(code string) Ref {
	return Ref{code: code}
}

// ByID references an account by its stored identifier.
func ByID(id string) Ref {
	return Ref{id: id}
}

// IsZero reports whether the reference carries neither a code nor an ID.
func (r Ref) IsZero() bool {
	return r.code == "" && r.id == ""
}

// Code returns the chart code if this is a by-code reference.
func (r Ref) Code() string { return r.code }

// ID returns the stored identifier if this is a by-ID reference.
func (r Ref) ID() string { return r.id }

func (r Ref) String() string {
	if r.code != "" {
		return fmt.Sprintf("code:%s", r.code)
	}
	if r.id != "" {
		return fmt.Sprintf("id:%s", r.id)
	}
	return "ref:empty"
}
