package shellfie

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSceneSnapshot_RoundTrip(t *testing.T) {
	scene, err := Layout(staticConfig(), DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(scene.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"rounded_rect"`) {
		t.Errorf("snapshot missing op kind: %s", data)
	}

	var snap SceneSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := snap.Scene(); !reflect.DeepEqual(got, scene) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, scene)
	}
}

func TestOpSnapshot_UnknownKind(t *testing.T) {
	var op OpSnapshot
	err := json.Unmarshal([]byte(`{"kind":"polygon","op":{}}`), &op)
	if err == nil || !strings.Contains(err.Error(), "polygon") {
		t.Errorf("Unmarshal() = %v, want unknown kind error", err)
	}
}

func TestJSONRasterizer(t *testing.T) {
	dir := t.TempDir()
	r := JSONRasterizer{}
	if err := r.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}

	a := &Scene{Width: 10, Height: 10, Ops: []DrawOp{Rect{X1: 9, Y1: 9, Fill: "#ff0000"}}}
	b := &Scene{Width: 10, Height: 10, Ops: []DrawOp{Circle{CX: 5, CY: 5, Radius: 3, Fill: "#00ff00"}}}
	frames := []ComposedFrame{
		{Path: filepath.Join(dir, "a.json"), Delay: 80},
		{Path: filepath.Join(dir, "b.json"), Delay: 1000},
	}
	ctx := context.Background()
	if err := r.WriteImage(ctx, a, frames[0].Path); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if err := r.WriteImage(ctx, b, frames[1].Path); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	out := filepath.Join(dir, "anim.json")
	if err := r.Compose(ctx, frames, true, out); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var anim AnimationSnapshot
	if err := json.Unmarshal(data, &anim); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !anim.Loop || len(anim.Frames) != 2 {
		t.Fatalf("animation = %+v", anim)
	}
	if anim.Frames[0].DelayCS != 8 || anim.Frames[1].DelayCS != 100 || anim.Frames[1].Delay != 1000 {
		t.Errorf("delays = %+v", anim.Frames)
	}
	if got := anim.Frames[1].Scene.Scene(); !reflect.DeepEqual(got, b) {
		t.Errorf("frame 1 scene = %+v, want %+v", got, b)
	}
}

func TestJSONRasterizer_Errors(t *testing.T) {
	dir := t.TempDir()
	r := JSONRasterizer{}
	ctx := context.Background()

	if err := r.Compose(ctx, nil, false, filepath.Join(dir, "x.json")); KindOf(err) != KindRender {
		t.Errorf("Compose(no frames) = %v, want render error", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("not json"), 0o644)
	err := r.Compose(ctx, []ComposedFrame{{Path: bad}}, false, filepath.Join(dir, "x.json"))
	if KindOf(err) != KindRender {
		t.Errorf("Compose(bad frame) = %v, want render error", err)
	}

	err = r.WriteImage(ctx, &Scene{}, filepath.Join(dir, "missing", "x.json"))
	if KindOf(err) != KindRender {
		t.Errorf("WriteImage(bad path) = %v, want render error", err)
	}
}
