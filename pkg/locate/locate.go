// Package locate resolves the source span of spec declarations.
//
// Call sites captured at declaration time only carry a file and a line. The
// Resolver parses the file with tree-sitter and widens the location to the full
// declaring call expression, e.g. an it.Should call including its body.
package locate

import (
	"context"
	"log/slog"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
)

// declarations are the method and function names whose calls declare tests or groups.
var declarations = map[string]bool{
	"Should":       true,
	"ShouldThrow":  true,
	"FShouldThrow": true,
	"XShouldThrow": true,
	"FShould":      true,
	"XShould":      true,
	"Spec":         true,
	"FSpec":        true,
	"XSpec":        true,
	"Describes":    true,
	"FDescribes":   true,
	"XDescribes":   true,
	"Params1":      true,
	"Params2":      true,
}

// Span is one declaring call of a file.
type Span struct {
	// Line is the 1-based line of the call's opening parenthesis, the line
	// the runtime reports for the call.
	Line     int
	Location domain.Location
}

// Resolver caches the declaration spans of every file it has seen.
// It is safe for concurrent use.
type Resolver struct {
	mu       sync.Mutex
	files    map[string][]Span
	readFile func(string) ([]byte, error)
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReadFile replaces os.ReadFile, e.g. to read from an embedded filesystem.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(r *Resolver) {
		r.readFile = fn
	}
}

// WithLogger sets the logger used for unreadable or unparsable files.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates an empty resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		files:    map[string][]Span{},
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.ForComponent("locate")
	}
	return r
}

// Resolve returns the span of the declaring call at loc.File:loc.StartLine.
// loc is returned unchanged when the file cannot be read or no declaring call starts on that line.
// When several calls start on the line, the outermost one wins.
func (r *Resolver) Resolve(loc domain.Location) domain.Location {
	if loc.File == "" || loc.StartLine <= 0 {
		return loc
	}
	for _, s := range r.spans(loc.File) {
		if s.Line == loc.StartLine {
			return s.Location
		}
	}
	return loc
}

func (r *Resolver) spans(file string) []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.files[file]; ok {
		return cached
	}

	source, err := r.readFile(file)
	if err != nil {
		r.logger.Debug("cannot read declaration source", "file", file, "error", err)
		r.files[file] = nil
		return nil
	}

	spans, err := Spans(context.Background(), file, source)
	if err != nil {
		r.logger.Debug("cannot parse declaration source", "file", file, "error", err)
	}
	r.files[file] = spans
	return spans
}

// Spans lists the declaring calls of a Go source file in document order.
func Spans(ctx context.Context, filename string, source []byte) ([]Span, error) {
	tree, err := parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var spans []Span
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		name := calleeName(node, source)
		args := node.ChildByFieldName("arguments")
		if declarations[name] && args != nil {
			spans = append(spans, Span{
				Line:     int(args.StartPoint().Row) + 1,
				Location: nodeLocation(node, filename),
			})
		}
		return true
	})
	return spans, nil
}

// calleeName returns the called identifier: "Should" for it.Should(...) and
// spec.Params1[int](...), "Describes" for Describes(...).
func calleeName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	if fn.Type() == "generic_type" || fn.Type() == "index_expression" {
		if inner := fn.Child(0); inner != nil {
			fn = inner
		}
	}
	switch fn.Type() {
	case "identifier":
		return nodeText(fn, source)
	case "selector_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return nodeText(field, source)
		}
	}
	return ""
}
