// pre_processor.go implements the WGSL shader pre-processor. It scans shader source
// for @stone: annotations and splices the registered WGSL sources they name, so shared
// struct declarations and helper functions live in one file and are composed per pipeline.
package shader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInclude is returned when an include annotation names an unregistered source.
var ErrUnknownInclude = errors.New("unknown shader include")

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// sources maps include names to their WGSL text.
	sources map[string]string

	// included lists the include names spliced during the last Process call, in splice order.
	included []string
}

// PreProcessor resolves include annotations in WGSL source against a registry of named sources.
type PreProcessor interface {
	// Process replaces every include annotation with the named source, recursively.
	// A source already spliced earlier in the same shader is skipped, which also breaks include cycles.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code
	//   - error: a malformed annotation or an ErrUnknownInclude
	Process(source string) (string, error)

	// Included returns the include names spliced by the most recent Process call, in splice order.
	//
	// Returns:
	//   - []string: the spliced include names
	Included() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a pre-processor with the given registered sources.
//
// Parameters:
//   - options: variadic list of PreProcessorBuilderOption functions registering include sources
//
// Returns:
//   - PreProcessor: the configured pre-processor
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{
		sources: make(map[string]string),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.included = nil
	seen := make(map[string]bool)
	var sb strings.Builder
	if err := p.expand(&sb, source, seen); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *preProcessor) expand(sb *strings.Builder, source string, seen map[string]bool) error {
	for i, line := range strings.Split(source, "\n") {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return err
		}
		if a == nil {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}

		if seen[a.Name] {
			continue
		}
		included, ok := p.sources[a.Name]
		if !ok {
			return fmt.Errorf("%w %q at line %d", ErrUnknownInclude, a.Name, a.Line)
		}
		seen[a.Name] = true
		if err := p.expand(sb, included, seen); err != nil {
			return fmt.Errorf("in %q: %w", a.Name, err)
		}
		p.included = append(p.included, a.Name)
	}
	return nil
}

func (p *preProcessor) Included() []string {
	return p.included
}

// PreProcessorBuilderOption is a functional option for configuring a PreProcessor.
type PreProcessorBuilderOption func(*preProcessor)

// WithInclude registers a named WGSL source for include annotations.
//
// Parameters:
//   - name: the name used in //@stone:include <name>
//   - source: the WGSL text spliced in its place
//
// Returns:
//   - PreProcessorBuilderOption: option function to apply
func WithInclude(name, source string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.sources[name] = source
	}
}
