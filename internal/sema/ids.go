package sema

// Arena ids. Zero is the absent value for each arena; slot 0 holds an
// invalid sentinel so a plain struct zero value never aliases real data.
type (
	ScopeID   uint32
	BindingID uint32
	RefID     uint32
)

const (
	NoScope   ScopeID   = 0
	NoBinding BindingID = 0
	NoRef     RefID     = 0
)
