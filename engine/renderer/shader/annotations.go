// annotations.go defines the annotation syntax understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments prefixed with @stone: that name a registered
// WGSL fragment to splice into the shader at that line.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@stone:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude splices the named registered source into the shader at the
	// annotation site. Each source is spliced at most once per shader.
	//
	// Syntax: //@stone:include <name>
	//
	// Example: //@stone:include lighting
	AnnotationTypeInclude AnnotationType = "include"
)

// Annotation is a parsed annotation line.
type Annotation struct {
	// Type is the annotation kind.
	Type AnnotationType

	// Name is the registered source the annotation refers to.
	Name string

	// Line is the 1-based source line the annotation was found on.
	Line int
}

// parseAnnotation parses one source line. Lines that are not annotations return nil with no error.
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number, for error messages
//
// Returns:
//   - *Annotation: the parsed annotation, or nil for ordinary lines
//   - error: an error if the line carries the prefix but is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	if !strings.HasPrefix(body, annotationPrefix) {
		return nil, nil
	}

	fields := strings.Fields(strings.TrimPrefix(body, annotationPrefix))
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch AnnotationType(fields[0]) {
	case AnnotationTypeInclude:
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: include expects exactly one name, got %d", lineNum, len(fields)-1)
		}
		return &Annotation{Type: AnnotationTypeInclude, Name: fields[1], Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation %q", lineNum, fields[0])
	}
}
