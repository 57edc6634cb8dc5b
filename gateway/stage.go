package gateway

import (
	"fmt"
	"math/rand"

	"github.com/Carmen-Shannon/stonegate/engine/camera"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/engine/scene"
	"github.com/Carmen-Shannon/stonegate/puzzle"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	cameraPosition = mgl32.Vec3{0, -10, 4}
	cameraFocus    = mgl32.Vec3{0, 0, 1.5}
	spotPosition   = mgl32.Vec3{5, -5, 9}
	spotFocus      = mgl32.Vec3{0, 0, 1}
	archPosition   = mgl32.Vec3{0, 5, 0}
)

// Stage is the gateway scene: the camera and spotlight rig, static scenery and the stone field.
type Stage struct {
	Scene  scene.Scene
	Rig    scene.Rig
	Bodies []scene.NodeID
}

// lookRotation orients a node at eye so its local -Z axis points at center with +Z up.
func lookRotation(eye, center mgl32.Vec3) mgl32.Quat {
	view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 0, 1})
	return mgl32.Mat4ToQuat(view.Inv()).Normalize()
}

// newObject draws m at node with pipelineKey in the visible pass and, when it casts shadows,
// with the depth pipeline in the shadow passes.
func newObject(node scene.NodeID, m model.Model, pipelineKey string, tex renderer.Texture, castsShadow bool) scene.Object {
	obj := scene.Object{Node: node, Model: m}
	obj.Programs[scene.PassDefault] = &scene.Program{PipelineKey: pipelineKey, Texture: tex}
	if castsShadow {
		obj.Programs[scene.PassShadow] = &scene.Program{PipelineKey: resources.PipelineDepth}
	}
	return obj
}

// NewStage builds the gateway scene graph from the registry's meshes and materials.
//
// Parameters:
//   - reg: the resource registry
//   - cfg: the game settings
//   - rng: the source stone meshes are picked from
//
// Returns:
//   - *Stage: the built stage
//   - error: puzzle.ErrEmptyPool when the registry holds no stone meshes, or a scene error
func NewStage(reg *resources.Registry, cfg config.Config, rng *rand.Rand) (*Stage, error) {
	stones := reg.Stones()
	if len(stones) == 0 {
		return nil, fmt.Errorf("%w: no stone meshes", puzzle.ErrEmptyPool)
	}
	ground, ok := reg.Models.Get(resources.ModelGround)
	if !ok {
		return nil, fmt.Errorf("model %q not in registry", resources.ModelGround)
	}
	arch, ok := reg.Models.Get(resources.ModelArch)
	if !ok {
		return nil, fmt.Errorf("model %q not in registry", resources.ModelArch)
	}

	sc := scene.NewScene("gateway")
	var err error
	add := func(t scene.Transform) scene.NodeID {
		if err != nil {
			return scene.NoNode
		}
		var id scene.NodeID
		id, err = sc.AddNode(t)
		return id
	}

	cameraParent := add(scene.NewTransform(scene.CameraParentName, scene.NoNode))
	cam := scene.NewTransform(scene.CameraName, cameraParent)
	cam.Position = cameraPosition
	cam.Rotation = lookRotation(cameraPosition, cameraFocus)
	cameraNode := add(cam)

	spotParent := add(scene.NewTransform(scene.SpotParentName, scene.NoNode))
	spot := scene.NewTransform(scene.SpotName, spotParent)
	spot.Position = spotPosition
	spot.Rotation = lookRotation(spotPosition, spotFocus)
	spotNode := add(spot)

	groundNode := add(scene.NewTransform(resources.ModelGround, scene.NoNode))
	archTransform := scene.NewTransform(resources.ModelArch, scene.NoNode)
	archTransform.Position = archPosition
	archNode := add(archTransform)

	stage := &Stage{Scene: sc}
	for i := 0; i < cfg.Puzzle.FieldSize; i++ {
		stage.Bodies = append(stage.Bodies, add(scene.NewTransform(fmt.Sprintf("Body.%02d", i), scene.NoNode)))
	}
	if err != nil {
		return nil, err
	}

	rc := cfg.Render
	if err := sc.AttachCamera(cameraNode, camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(rc.CameraFovDegrees)),
		camera.WithNear(0.1),
		camera.WithFar(60),
	)); err != nil {
		return nil, err
	}
	if err := sc.AttachLight(spotNode, light.NewLight(
		light.WithType(light.LightTypeSpot),
		light.WithFov(mgl32.DegToRad(rc.SpotFovDegrees)),
		light.WithColor(rc.SpotColor[0], rc.SpotColor[1], rc.SpotColor[2]),
		light.WithShadowRange(1, 40),
		light.WithCastsShadows(true),
	)); err != nil {
		return nil, err
	}

	objects := []scene.Object{
		newObject(groundNode, ground, resources.PipelineLit, reg.Material(resources.MaterialWood), false),
		newObject(archNode, arch, resources.PipelineLit, reg.Material(resources.MaterialMarble), true),
	}
	for _, id := range stage.Bodies {
		stone := stones[rng.Intn(len(stones))]
		objects = append(objects, newObject(id, stone, resources.PipelineShady, reg.Material(resources.MaterialStone), true))
	}
	for _, obj := range objects {
		if _, err := sc.AddObject(obj); err != nil {
			return nil, err
		}
	}

	if stage.Rig, err = sc.FindRig(); err != nil {
		return nil, err
	}
	return stage, nil
}
