package domain

import "fmt"

// Location represents a position in source code.
type Location struct {
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	StartLine int    `json:"startLine,omitempty" yaml:"startLine,omitempty"`
	EndLine   int    `json:"endLine,omitempty" yaml:"endLine,omitempty"`
	StartCol  int    `json:"startCol,omitempty" yaml:"startCol,omitempty"`
	EndCol    int    `json:"endCol,omitempty" yaml:"endCol,omitempty"`
}

// IsZero reports whether no location was captured.
func (l Location) IsZero() bool {
	return l.File == "" && l.StartLine == 0
}

func (l Location) String() string {
	if l.IsZero() {
		return ""
	}
	if l.EndLine > l.StartLine {
		return fmt.Sprintf("%s:%d-%d", l.File, l.StartLine, l.EndLine)
	}
	return fmt.Sprintf("%s:%d", l.File, l.StartLine)
}
