// Package resources builds the process-lifetime GPU resources the game draws with: pipelines,
// meshes, material textures and the target image pool. The Registry is created once at
// startup and passed by reference to every mode that renders.
package resources

import (
	"errors"
	"fmt"
	"image"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
)

// ErrNoImages is returned when the target image pool would be empty.
var ErrNoImages = errors.New("no target images")

// Model names of the static scenery.
const (
	ModelGround = "Ground"
	ModelArch   = "Arch"
)

// Registry holds the shared rendering resources.
type Registry struct {
	Renderer renderer.Renderer
	Models   *model.Pool

	// Materials maps material names to their textures.
	Materials map[string]renderer.Texture

	// Images is the pool of candidate puzzle target images; ImageNames holds their names.
	Images     []renderer.Texture
	ImageNames []string

	stoneVariants int
	workers       int
	seed          int64
	sources       []common.ImageSource
}

// NewRegistry registers the pipelines and creates every mesh and texture.
//
// Parameters:
//   - r: the renderer resources are created with
//   - cfg: the game settings (texture sizes, image directory)
//   - options: variadic list of RegistryBuilderOption functions
//
// Returns:
//   - *Registry: the populated registry
//   - error: the first failure; ErrNoImages when no target image could be loaded
func NewRegistry(r renderer.Renderer, cfg config.Config, options ...RegistryBuilderOption) (*Registry, error) {
	reg := &Registry{
		Renderer:      r,
		Models:        model.NewPool(),
		Materials:     make(map[string]renderer.Texture),
		stoneVariants: 8,
		workers:       max(runtime.NumCPU()-1, 1),
		seed:          1,
	}
	for _, opt := range options {
		opt(reg)
	}

	pipelines, err := Pipelines()
	if err != nil {
		return nil, err
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		return nil, err
	}

	for i := 0; i < reg.stoneVariants; i++ {
		reg.Models.Add(model.NewModel(model.WithName(model.StoneName(i)), model.WithMeshData(model.Stone(reg.seed+int64(i)))))
	}
	reg.Models.Add(model.NewModel(model.WithName(ModelGround), model.WithMeshData(model.Ground(12, 64, 6))))
	reg.Models.Add(model.NewModel(model.WithName(ModelArch), model.WithMeshData(model.Arch(3, 4, 0.6))))
	if err := reg.Models.Upload(r); err != nil {
		return nil, err
	}

	for i, name := range []string{MaterialStone, MaterialWood, MaterialMarble, MaterialWhite} {
		img, err := GenerateMaterial(name, cfg.Render.MaterialResolution, reg.seed+int64(100+i))
		if err != nil {
			return nil, err
		}
		tex, err := reg.upload(name, img, renderer.SampleModeLinear)
		if err != nil {
			return nil, err
		}
		reg.Materials[name] = tex
	}

	if err := reg.loadImages(cfg); err != nil {
		return nil, err
	}
	log.Printf("[Registry] %d models, %d materials, %d target images", reg.Models.Len(), len(reg.Materials), len(reg.Images))
	return reg, nil
}

func (reg *Registry) loadImages(cfg config.Config) error {
	size := cfg.Render.ImageSize
	sources := reg.sources
	if cfg.Assets.ImageDir != "" {
		scanned, err := ScanImageDir(cfg.Assets.ImageDir)
		if err != nil {
			return err
		}
		sources = append(sources, scanned...)
	}

	var names []string
	var images []*image.RGBA
	if len(sources) > 0 {
		names, images = DecodeImages(sources, size, reg.workers)
	} else {
		for i, name := range builtinImageNames {
			img, err := GenerateTargetImage(name, size, reg.seed+int64(200+i))
			if err != nil {
				return err
			}
			names = append(names, name)
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return fmt.Errorf("%w: none of %d sources decoded", ErrNoImages, len(sources))
	}

	for i, img := range images {
		tex, err := reg.upload("image "+names[i], img, renderer.SampleModeClamp)
		if err != nil {
			return err
		}
		reg.Images = append(reg.Images, tex)
		reg.ImageNames = append(reg.ImageNames, names[i])
	}
	return nil
}

func (reg *Registry) upload(label string, img *image.RGBA, sampling renderer.SampleMode) (renderer.Texture, error) {
	staging := common.StagingFromRGBA(img)
	return reg.Renderer.CreateTexture(renderer.TextureDescriptor{
		Label:    label,
		Width:    int(staging.Width),
		Height:   int(staging.Height),
		Format:   renderer.TextureFormatRGBA8,
		Sampling: sampling,
		Pixels:   staging.Pixels,
	})
}

// Material returns the named material texture, or the white texture for unknown names.
func (reg *Registry) Material(name string) renderer.Texture {
	if tex, ok := reg.Materials[name]; ok {
		return tex
	}
	return reg.Materials[MaterialWhite]
}

// Stones returns the stone mesh variants.
func (reg *Registry) Stones() []model.Model {
	return reg.Models.Matching("Stone")
}

// Release frees every texture held by the registry.
func (reg *Registry) Release() {
	for _, tex := range reg.Materials {
		tex.Release()
	}
	for _, tex := range reg.Images {
		tex.Release()
	}
}
