package shader

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testVertexStruct = `struct In {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
};
`

const testEntryPoints = `@vertex
fn vert(in: In) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}

@fragment
fn frag() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Annotation
		wantErr bool
	}{
		{name: "plain code", line: "let x = 1.0;"},
		{name: "ordinary comment", line: "// just a note"},
		{name: "include", line: "//@stone:include lighting", want: &Annotation{Type: AnnotationTypeInclude, Name: "lighting", Line: 3}},
		{name: "indented with space", line: "    // @stone:include object", want: &Annotation{Type: AnnotationTypeInclude, Name: "object", Line: 3}},
		{name: "missing name", line: "//@stone:include", wantErr: true},
		{name: "extra name", line: "//@stone:include a b", wantErr: true},
		{name: "unknown kind", line: "//@stone:group 0 0", wantErr: true},
		{name: "empty", line: "//@stone:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnnotation(tt.line, 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProcessSplicesEachIncludeOnce(t *testing.T) {
	pp := NewPreProcessor(
		WithInclude("base", "struct Base { v: f32, };"),
		WithInclude("mid", "//@stone:include base\nstruct Mid { b: Base, };"),
		WithInclude("loop", "//@stone:include loop\nconst L = 1;"),
	)

	out, err := pp.Process("//@stone:include mid\n//@stone:include base\n//@stone:include loop\nfn main() {}")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "struct Base"); n != 1 {
		t.Errorf("struct Base spliced %d times, want 1", n)
	}
	if strings.Index(out, "struct Base") > strings.Index(out, "struct Mid") {
		t.Error("nested include not spliced ahead of its includer")
	}
	if n := strings.Count(out, "const L"); n != 1 {
		t.Errorf("self-including source spliced %d times, want 1", n)
	}
	if want := []string{"base", "mid", "loop"}; !reflect.DeepEqual(pp.Included(), want) {
		t.Errorf("Included() = %v, want %v", pp.Included(), want)
	}
}

func TestProcessUnknownInclude(t *testing.T) {
	pp := NewPreProcessor(WithInclude("outer", "//@stone:include missing"))
	_, err := pp.Process("//@stone:include outer")
	if !errors.Is(err, ErrUnknownInclude) {
		t.Fatalf("err = %v, want ErrUnknownInclude", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) || !strings.Contains(err.Error(), `in "outer"`) {
		t.Errorf("err = %q, want it to name the missing include and its includer", err)
	}
}

func TestNewShader(t *testing.T) {
	pp := NewPreProcessor(WithInclude("in", testVertexStruct))
	src := "//@stone:include in\n" +
		"@group(1) @binding(2) var tex: texture_2d<f32>;\n" +
		"@group(0) @binding(0) var<uniform> u: vec4<f32>;\n" +
		"/* @vertex fn commented(x: Nope) */\n" +
		testEntryPoints

	s, err := NewShader("test", src, pp)
	if err != nil {
		t.Fatal(err)
	}
	if s.VertexEntryPoint() != "vert" || s.FragmentEntryPoint() != "frag" {
		t.Errorf("entry points = %q/%q, want vert/frag", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}

	wantBindings := []Binding{
		{Group: 0, Binding: 0, Name: "u", Type: "vec4<f32>"},
		{Group: 1, Binding: 2, Name: "tex", Type: "texture_2d<f32>"},
	}
	if !reflect.DeepEqual(s.Bindings(), wantBindings) {
		t.Errorf("Bindings() = %+v, want %+v", s.Bindings(), wantBindings)
	}

	layout := s.VertexLayout()
	if layout == nil {
		t.Fatal("no vertex layout")
	}
	wantAttrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
	}
	if layout.ArrayStride != 20 || !reflect.DeepEqual(layout.Attributes, wantAttrs) {
		t.Errorf("layout = %+v, want stride 20 with %+v", layout, wantAttrs)
	}
}

func TestNewShaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "no fragment", source: "@vertex\nfn v() -> @builtin(position) vec4<f32> { return vec4<f32>(); }", wantErr: ErrMissingEntryPoint},
		{name: "unknown include", source: "//@stone:include nope\n" + testEntryPoints, wantErr: ErrUnknownInclude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader(tt.name, tt.source, NewPreProcessor())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVertexLayoutBuiltinOnly(t *testing.T) {
	src := "@vertex\nfn vs(@builtin(vertex_index) id: u32) -> @builtin(position) vec4<f32> { return vec4<f32>(); }\n" +
		"@fragment\nfn fs(in: Other) -> @location(0) vec4<f32> { return vec4<f32>(); }\n" +
		"struct Other {\n    @location(0) a: vec4<f32>,\n};\n"
	layout, err := VertexLayout(src)
	if err != nil {
		t.Fatal(err)
	}
	if layout != nil {
		t.Errorf("layout = %+v, want nil for a builtin-only vertex stage", layout)
	}
}
