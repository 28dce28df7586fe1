package format

import "fmt"

// UnsupportedError reports a construct that has no rendering in the target
// dialect.
type UnsupportedError struct {
	Feature string
	Dialect string
	Detail  string
}

func (e *UnsupportedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s is not supported in %s dialect: %s", e.Feature, e.Dialect, e.Detail)
	}
	return fmt.Sprintf("%s is not supported in %s dialect", e.Feature, e.Dialect)
}

func (p *Printer) unsupported(feature, detail string) {
	p.fail(&UnsupportedError{Feature: feature, Dialect: p.dialect.Name, Detail: detail})
}
