package resources_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Render.ImageSize = 16
	cfg.Render.MaterialResolution = 16
	return cfg
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewRegistryBuiltins(t *testing.T) {
	b := renderertest.NewBackend()
	r := renderer.NewRenderer(b, 64, 64)

	reg, err := resources.NewRegistry(r, smallConfig(), resources.WithStoneVariants(3), resources.WithWorkers(2))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, key := range []string{resources.PipelineDepth, resources.PipelineLit, resources.PipelineShady, resources.PipelineReveal, resources.PipelineFade} {
		if r.Pipeline(key) == nil {
			t.Errorf("pipeline %q not registered", key)
		}
	}
	if got := len(reg.Stones()); got != 3 {
		t.Errorf("Stones() returned %d models, want 3", got)
	}
	if len(b.Meshes) != 5 {
		t.Errorf("uploaded %d meshes, want 5", len(b.Meshes))
	}
	if len(reg.Images) == 0 || len(reg.Images) != len(reg.ImageNames) {
		t.Fatalf("image pool has %d textures and %d names", len(reg.Images), len(reg.ImageNames))
	}
	for _, tex := range reg.Images {
		if tex.Width() != 16 || tex.Height() != 16 || tex.Sampling() != renderer.SampleModeClamp {
			t.Errorf("image %q: %dx%d sampling %d", tex.Label(), tex.Width(), tex.Height(), tex.Sampling())
		}
	}
	if reg.Material("nope") != reg.Materials[resources.MaterialWhite] {
		t.Error("unknown materials should fall back to white")
	}
}

func TestNewRegistryDecodesSources(t *testing.T) {
	r := renderer.NewRenderer(renderertest.NewBackend(), 64, 64)
	reg, err := resources.NewRegistry(r, smallConfig(), resources.WithImageSources(
		common.ImageSource{Name: "wide", Data: encodePNG(t, 40, 10)},
		common.ImageSource{Name: "broken", Data: []byte("not an image")},
		common.ImageSource{Name: "tall", Data: encodePNG(t, 5, 30)},
	))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(reg.ImageNames) != 2 || reg.ImageNames[0] != "wide" || reg.ImageNames[1] != "tall" {
		t.Fatalf("ImageNames = %v, want [wide tall]", reg.ImageNames)
	}
}

func TestNewRegistryEmptyImagePool(t *testing.T) {
	r := renderer.NewRenderer(renderertest.NewBackend(), 64, 64)
	_, err := resources.NewRegistry(r, smallConfig(), resources.WithImageSources(
		common.ImageSource{Name: "broken", Data: []byte("garbage")},
	))
	if !errors.Is(err, resources.ErrNoImages) {
		t.Fatalf("NewRegistry error = %v, want ErrNoImages", err)
	}
}

func TestGenerateMaterial(t *testing.T) {
	for _, name := range []string{resources.MaterialStone, resources.MaterialWood, resources.MaterialMarble, resources.MaterialWhite} {
		img, err := resources.GenerateMaterial(name, 8, 1)
		if err != nil {
			t.Fatalf("GenerateMaterial(%q): %v", name, err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
			t.Errorf("%q has bounds %v", name, img.Bounds())
		}
	}
	if _, err := resources.GenerateMaterial("glass", 8, 1); err == nil {
		t.Error("unknown material should fail")
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 30, 7))
	dst := resources.Resize(src, 12)
	if dst.Bounds() != image.Rect(0, 0, 12, 12) {
		t.Fatalf("Resize bounds = %v", dst.Bounds())
	}
}
