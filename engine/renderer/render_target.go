package renderer

import (
	"errors"
	"fmt"
)

// ErrIncompleteTarget is returned when a render target cannot be used as a pass attachment.
var ErrIncompleteTarget = errors.New("incomplete render target")

// RenderTarget is an offscreen framebuffer: one color and one depth attachment of the same size.
type RenderTarget struct {
	Label string
	Color Texture
	Depth Texture
}

// Width returns the width of the target's attachments, or 0 if it has no color attachment.
func (t *RenderTarget) Width() int {
	if t == nil || t.Color == nil {
		return 0
	}
	return t.Color.Width()
}

// Height returns the height of the target's attachments, or 0 if it has no color attachment.
func (t *RenderTarget) Height() int {
	if t == nil || t.Color == nil {
		return 0
	}
	return t.Color.Height()
}

// Check verifies the target is complete: both attachments present, of the right formats,
// non-empty and of matching size.
//
// Returns:
//   - error: a wrapped ErrIncompleteTarget describing the first problem found, or nil
func (t *RenderTarget) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil target", ErrIncompleteTarget)
	}
	if t.Color == nil {
		return fmt.Errorf("%w: %s has no color attachment", ErrIncompleteTarget, t.Label)
	}
	if t.Depth == nil {
		return fmt.Errorf("%w: %s has no depth attachment", ErrIncompleteTarget, t.Label)
	}
	if t.Color.Format() != TextureFormatRGBA8 {
		return fmt.Errorf("%w: %s color attachment is not RGBA8", ErrIncompleteTarget, t.Label)
	}
	if t.Depth.Format() != TextureFormatDepth32 {
		return fmt.Errorf("%w: %s depth attachment is not a depth format", ErrIncompleteTarget, t.Label)
	}
	if t.Color.Width() <= 0 || t.Color.Height() <= 0 {
		return fmt.Errorf("%w: %s has zero size", ErrIncompleteTarget, t.Label)
	}
	if t.Color.Width() != t.Depth.Width() || t.Color.Height() != t.Depth.Height() {
		return fmt.Errorf("%w: %s attachments differ in size (%dx%d color, %dx%d depth)",
			ErrIncompleteTarget, t.Label, t.Color.Width(), t.Color.Height(), t.Depth.Width(), t.Depth.Height())
	}
	return nil
}

// Release frees both attachments.
func (t *RenderTarget) Release() {
	if t == nil {
		return
	}
	if t.Color != nil {
		t.Color.Release()
	}
	if t.Depth != nil {
		t.Depth.Release()
	}
}
