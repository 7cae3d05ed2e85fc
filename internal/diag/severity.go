package diag

// Severity ranks how serious a diagnostic is. Lint findings are warnings;
// errors are reserved for syntax and I/O failures that make the file
// unprocessable.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
