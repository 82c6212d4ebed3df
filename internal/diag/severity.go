package diag

// Severity ranks a diagnostic. Errors mean the lowered output is
// incomplete; warnings and infos never stop a run.
type Severity uint8

const (
	// SevInfo carries advisory output, like phase timings.
	SevInfo Severity = iota
	// SevWarning flags accepted-but-deprecated input, like
	// parenthesized arguments outside a trait path.
	SevWarning
	// SevError flags input replaced by an error placeholder.
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
