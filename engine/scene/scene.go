package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/stonegate/common"
	"github.com/Carmen-Shannon/stonegate/engine/camera"
	"github.com/Carmen-Shannon/stonegate/engine/light"
	"github.com/Carmen-Shannon/stonegate/engine/model"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrMissingNode is returned when a required node or attachment is absent.
	ErrMissingNode = errors.New("missing scene node")

	// ErrDuplicateNode is returned when a node or attachment required to be unique appears more than once.
	ErrDuplicateNode = errors.New("duplicate scene node")

	// ErrNotSpotLamp is returned when the lamp attached to the spot node is not a spot light.
	ErrNotSpotLamp = errors.New("lamp is not a spot light")

	// ErrUnknownNode is returned when a NodeID does not refer to a node of the scene.
	ErrUnknownNode = errors.New("unknown scene node")
)

// Object is a drawable: a node, the model drawn at it and one optional program per pass.
type Object struct {
	Node     NodeID
	Model    model.Model
	Programs [passTypeCount]*Program
}

// CameraAttachment is a camera mounted on a node.
type CameraAttachment struct {
	Node   NodeID
	Camera camera.Camera
}

// LightAttachment is a lamp mounted on a node. The lamp shines down the node's local -Z axis.
type LightAttachment struct {
	Node  NodeID
	Light light.Light
}

// Scene holds a graph of transform nodes addressed by NodeID, the objects, cameras and
// lamps attached to them, and draws its objects through a renderer.Renderer.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// AddNode adds a node and returns its handle.
	//
	// Parameters:
	//   - t: the node's local transform; t.Parent must be NoNode or an existing node
	//
	// Returns:
	//   - NodeID: the handle of the new node
	//   - error: ErrUnknownNode if the parent does not exist
	AddNode(t Transform) (NodeID, error)

	// Node returns a copy of a node's local transform.
	//
	// Parameters:
	//   - id: the node handle
	//
	// Returns:
	//   - Transform: the local transform
	//   - bool: whether the node exists
	Node(id NodeID) (Transform, bool)

	// SetPosition sets a node's local position. Unknown handles are ignored.
	SetPosition(id NodeID, p mgl32.Vec3)

	// SetRotation sets a node's local rotation. Unknown handles are ignored.
	SetRotation(id NodeID, q mgl32.Quat)

	// SetScale sets a node's local scale. Unknown handles are ignored.
	SetScale(id NodeID, s mgl32.Vec3)

	// Find returns the handles of every node with the given name, in insertion order.
	//
	// Parameters:
	//   - name: the exact node name
	//
	// Returns:
	//   - []NodeID: the matching nodes, possibly empty
	Find(name string) []NodeID

	// LocalToWorld composes the node's transform with all of its ancestors.
	//
	// Parameters:
	//   - id: the node handle
	//
	// Returns:
	//   - mgl32.Mat4: the world-from-local matrix, identity for unknown handles
	LocalToWorld(id NodeID) mgl32.Mat4

	// WorldToLocal is the inverse of LocalToWorld.
	//
	// Parameters:
	//   - id: the node handle
	//
	// Returns:
	//   - mgl32.Mat4: the local-from-world matrix, identity for unknown handles
	WorldToLocal(id NodeID) mgl32.Mat4

	// AttachCamera mounts a camera on a node.
	AttachCamera(id NodeID, cam camera.Camera) error

	// AttachLight mounts a lamp on a node.
	AttachLight(id NodeID, l light.Light) error

	// Cameras returns the camera attachments in insertion order.
	Cameras() []CameraAttachment

	// Lights returns the lamp attachments in insertion order.
	Lights() []LightAttachment

	// AddObject adds a drawable object. Its index in Objects is its draw-call ObjectID.
	//
	// Parameters:
	//   - obj: the object; obj.Node must exist and obj.Model must be set
	//
	// Returns:
	//   - int: the object ID
	//   - error: an error if the node is unknown or the model is missing
	AddObject(obj Object) (int, error)

	// Objects returns the objects in insertion order.
	Objects() []Object

	// Draw issues one draw per object that has a program for the pass, in insertion order.
	// Per-object uniforms are computed in parallel before any draw is issued.
	//
	// Parameters:
	//   - r: the renderer; a pass must be open
	//   - worldToClip: the projection times the viewer's world-to-local matrix
	//   - pass: the program slot to draw with
	//
	// Returns:
	//   - error: the first draw error
	Draw(r renderer.Renderer, worldToClip mgl32.Mat4, pass PassType) error

	// FindRig looks up the camera and spotlight rig the puzzle drives.
	//
	// Returns:
	//   - Rig: the rig
	//   - error: a wrapped ErrMissingNode, ErrDuplicateNode or ErrNotSpotLamp
	FindRig() (Rig, error)
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu   *sync.RWMutex
	name string

	// nodes[0] is unused so that NodeID 0 means no node.
	nodes   []Transform
	objects []Object
	cameras []CameraAttachment
	lights  []LightAttachment

	drawPool    worker.DynamicWorkerPool
	drawWorkers int
	uniformPool [][]byte
}

var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:          &sync.RWMutex{},
		name:        name,
		nodes:       make([]Transform, 1),
		drawWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}

	// Queue size of 256 covers the stone field with headroom.
	s.drawPool = worker.NewDynamicWorkerPool(s.drawWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) valid(id NodeID) bool {
	return id > 0 && int(id) < len(s.nodes)
}

func (s *scene) AddNode(t Transform) (NodeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Parent != NoNode && !s.valid(t.Parent) {
		return NoNode, fmt.Errorf("%w: parent %d of %q", ErrUnknownNode, t.Parent, t.Name)
	}
	if t.Rotation == (mgl32.Quat{}) {
		t.Rotation = mgl32.QuatIdent()
	}
	s.nodes = append(s.nodes, t)
	return NodeID(len(s.nodes) - 1), nil
}

func (s *scene) Node(id NodeID) (Transform, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid(id) {
		return Transform{}, false
	}
	return s.nodes[id], true
}

func (s *scene) SetPosition(id NodeID, p mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid(id) {
		s.nodes[id].Position = p
	}
}

func (s *scene) SetRotation(id NodeID, q mgl32.Quat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid(id) {
		s.nodes[id].Rotation = q
	}
}

func (s *scene) SetScale(id NodeID, v mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid(id) {
		s.nodes[id].Scale = v
	}
}

func (s *scene) Find(name string) []NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []NodeID
	for i := 1; i < len(s.nodes); i++ {
		if s.nodes[i].Name == name {
			out = append(out, NodeID(i))
		}
	}
	return out
}

func (s *scene) LocalToWorld(id NodeID) mgl32.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.localToWorld(id)
}

func (s *scene) localToWorld(id NodeID) mgl32.Mat4 {
	m := mgl32.Ident4()
	for s.valid(id) {
		t := s.nodes[id]
		m = t.LocalMatrix().Mul4(m)
		id = t.Parent
	}
	return m
}

func (s *scene) WorldToLocal(id NodeID) mgl32.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := mgl32.Ident4()
	for s.valid(id) {
		t := s.nodes[id]
		m = m.Mul4(t.InverseLocalMatrix())
		id = t.Parent
	}
	return m
}

func (s *scene) AttachCamera(id NodeID, cam camera.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(id) {
		return fmt.Errorf("%w: camera node %d", ErrUnknownNode, id)
	}
	s.cameras = append(s.cameras, CameraAttachment{Node: id, Camera: cam})
	return nil
}

func (s *scene) AttachLight(id NodeID, l light.Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(id) {
		return fmt.Errorf("%w: lamp node %d", ErrUnknownNode, id)
	}
	s.lights = append(s.lights, LightAttachment{Node: id, Light: l})
	return nil
}

func (s *scene) Cameras() []CameraAttachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CameraAttachment(nil), s.cameras...)
}

func (s *scene) Lights() []LightAttachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LightAttachment(nil), s.lights...)
}

func (s *scene) AddObject(obj Object) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(obj.Node) {
		return 0, fmt.Errorf("%w: object node %d", ErrUnknownNode, obj.Node)
	}
	if obj.Model == nil {
		return 0, fmt.Errorf("object at node %q has no model", s.nodes[obj.Node].Name)
	}
	s.objects = append(s.objects, obj)
	s.uniformPool = append(s.uniformPool, nil)
	return len(s.objects) - 1, nil
}

func (s *scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Object(nil), s.objects...)
}

func (s *scene) Draw(r renderer.Renderer, worldToClip mgl32.Mat4, pass PassType) error {
	if pass < 0 || pass >= passTypeCount {
		return fmt.Errorf("unknown pass type %d", pass)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Phase 1 (parallel): build every object's uniform block. Workers only read the
	// node list and write their own uniformPool slot.
	var wg sync.WaitGroup
	for i := range s.objects {
		if s.objects[i].Programs[pass] == nil {
			continue
		}
		wg.Add(1)
		idx := i
		s.drawPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				objectToWorld := s.localToWorld(s.objects[idx].Node)
				u := GPUObjectUniforms{
					ObjectToClip:  worldToClip.Mul4(objectToWorld),
					ObjectToWorld: objectToWorld,
					NormalToWorld: common.NormalMatrix(objectToWorld),
				}
				s.uniformPool[idx] = u.Marshal()
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2 (serial): issue draws in insertion order.
	for i, obj := range s.objects {
		prog := obj.Programs[pass]
		if prog == nil {
			continue
		}
		mesh := obj.Model.Mesh()
		if mesh == nil {
			return fmt.Errorf("model %q is not uploaded", obj.Model.Name())
		}
		if err := r.Draw(renderer.DrawCall{
			PipelineKey: prog.PipelineKey,
			ObjectID:    i,
			Mesh:        mesh,
			Texture:     prog.Texture,
			Uniforms:    s.uniformPool[i],
		}); err != nil {
			return err
		}
	}
	return nil
}
