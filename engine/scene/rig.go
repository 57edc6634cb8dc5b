package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/stonegate/engine/camera"
	"github.com/Carmen-Shannon/stonegate/engine/light"
)

// Names of the nodes the puzzle rig is assembled from.
const (
	CameraParentName = "CameraParent"
	SpotParentName   = "SpotParent"
	CameraName       = "Camera"
	SpotName         = "Spot"
)

// Rig is the set of nodes and attachments the puzzle rotates and renders from.
type Rig struct {
	CameraParent NodeID
	SpotParent   NodeID
	CameraNode   NodeID
	SpotNode     NodeID
	Camera       camera.Camera
	Spot         light.Light
}

func (s *scene) FindRig() (Rig, error) {
	var rig Rig
	var err error

	if rig.CameraParent, err = s.unique(CameraParentName); err != nil {
		return Rig{}, err
	}
	if rig.SpotParent, err = s.unique(SpotParentName); err != nil {
		return Rig{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cameras {
		if s.nodes[c.Node].Name != CameraName {
			continue
		}
		if rig.Camera != nil {
			return Rig{}, fmt.Errorf("%w: more than one camera on %q", ErrDuplicateNode, CameraName)
		}
		rig.CameraNode, rig.Camera = c.Node, c.Camera
	}
	if rig.Camera == nil {
		return Rig{}, fmt.Errorf("%w: no camera on %q", ErrMissingNode, CameraName)
	}

	for _, l := range s.lights {
		if s.nodes[l.Node].Name != SpotName {
			continue
		}
		if rig.Spot != nil {
			return Rig{}, fmt.Errorf("%w: more than one lamp on %q", ErrDuplicateNode, SpotName)
		}
		if l.Light.Type() != light.LightTypeSpot {
			return Rig{}, fmt.Errorf("%w: %q holds a %s lamp", ErrNotSpotLamp, SpotName, l.Light.Type())
		}
		rig.SpotNode, rig.Spot = l.Node, l.Light
	}
	if rig.Spot == nil {
		return Rig{}, fmt.Errorf("%w: no lamp on %q", ErrMissingNode, SpotName)
	}
	return rig, nil
}

func (s *scene) unique(name string) (NodeID, error) {
	ids := s.Find(name)
	switch len(ids) {
	case 0:
		return NoNode, fmt.Errorf("%w: %q", ErrMissingNode, name)
	case 1:
		return ids[0], nil
	default:
		return NoNode, fmt.Errorf("%w: %d nodes named %q", ErrDuplicateNode, len(ids), name)
	}
}
