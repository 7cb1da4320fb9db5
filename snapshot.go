package shellfie

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// SceneSnapshot is the JSON form of a [Scene].
type SceneSnapshot struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Ops    []OpSnapshot `json:"ops"`
}

// OpSnapshot tags a draw operation with its kind.
type OpSnapshot struct {
	Kind OpKind `json:"kind"`
	Op   DrawOp `json:"op"`
}

// Snapshot converts the scene to its serializable form.
func (s *Scene) Snapshot() SceneSnapshot {
	snap := SceneSnapshot{
		Width:  s.Width,
		Height: s.Height,
		Ops:    make([]OpSnapshot, len(s.Ops)),
	}
	for i, op := range s.Ops {
		snap.Ops[i] = OpSnapshot{Kind: op.Kind(), Op: op}
	}
	return snap
}

// UnmarshalJSON restores a draw operation from its tagged form.
func (o *OpSnapshot) UnmarshalJSON(data []byte) error {
	var env struct {
		Kind OpKind          `json:"kind"`
		Op   json.RawMessage `json:"op"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var op DrawOp
	var err error
	switch env.Kind {
	case OpRoundedRect:
		op, err = decodeOp[RoundedRect](env.Op)
	case OpRect:
		op, err = decodeOp[Rect](env.Op)
	case OpCircle:
		op, err = decodeOp[Circle](env.Op)
	case OpText:
		op, err = decodeOp[Text](env.Op)
	case OpBlur:
		op, err = decodeOp[Blur](env.Op)
	default:
		return fmt.Errorf("unknown draw op kind %q", env.Kind)
	}
	if err != nil {
		return err
	}

	o.Kind, o.Op = env.Kind, op
	return nil
}

func decodeOp[T DrawOp](data json.RawMessage) (DrawOp, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Scene converts a snapshot back into a scene.
func (s SceneSnapshot) Scene() *Scene {
	scene := &Scene{Width: s.Width, Height: s.Height, Ops: make([]DrawOp, len(s.Ops))}
	for i, op := range s.Ops {
		scene.Ops[i] = op.Op
	}
	return scene
}

// AnimationSnapshot is the JSON form of a composed animation.
type AnimationSnapshot struct {
	Loop   bool            `json:"loop"`
	Frames []FrameSnapshot `json:"frames"`
}

// FrameSnapshot is one frame of an [AnimationSnapshot].
type FrameSnapshot struct {
	Delay   int           `json:"delay"`    // milliseconds
	DelayCS int           `json:"delay_cs"` // hundredths of a second, as written to a GIF
	Scene   SceneSnapshot `json:"scene"`
}

// JSONRasterizer writes scenes as JSON instead of pixels. It is useful for
// inspecting layouts and for feeding an external renderer.
//
// Example:
//
//	r := shellfie.NewRenderer(shellfie.WithRasterizer(shellfie.JSONRasterizer{}))
//	err := r.Render(ctx, cfg, "scene.json")
type JSONRasterizer struct{}

// Check implements [Rasterizer].
func (JSONRasterizer) Check() error {
	return nil
}

// WriteImage writes the scene snapshot to path.
func (JSONRasterizer) WriteImage(ctx context.Context, scene *Scene, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeJSON("write image", path, scene.Snapshot())
}

// Compose reads the frame snapshots back and writes them as one document.
func (JSONRasterizer) Compose(ctx context.Context, frames []ComposedFrame, loop bool, path string) error {
	if len(frames) == 0 {
		return renderError("compose", nil, "no frames to compose")
	}

	anim := AnimationSnapshot{Loop: loop, Frames: make([]FrameSnapshot, 0, len(frames))}
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(frame.Path)
		if err != nil {
			return renderError("compose", err, "cannot open frame %s", frame.Path)
		}
		var snap SceneSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return renderError("compose", err, "cannot decode frame %s", frame.Path)
		}
		anim.Frames = append(anim.Frames, FrameSnapshot{
			Delay:   frame.Delay,
			DelayCS: GIFDelay(frame.Delay),
			Scene:   snap,
		})
	}
	return writeJSON("compose", path, anim)
}

func writeJSON(op, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return renderError(op, err, "cannot encode %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return renderError(op, err, "cannot write %s", path)
	}
	return nil
}

var _ Rasterizer = JSONRasterizer{}
