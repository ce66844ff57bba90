package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/assets"
	"MirrorVision/cliente/internal/gpu"
)

func testSkullMesh() *assets.MeshData {
	return &assets.MeshData{
		Vertices: []gpu.Vertex{
			{Pos: mgl32.Vec3{-0.5, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}},
			{Pos: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 1, 0}},
			{Pos: mgl32.Vec3{0.5, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}},
		},
		Indices: []uint16{0, 1, 2},
	}
}

func newTestScene(t *testing.T, size int) *Scene {
	t.Helper()
	dev := gpu.NewDevice(size, size)
	t.Cleanup(dev.Destroy)
	return NewScene(dev, testSkullMesh(), testSkullMesh())
}

func TestCenaSlotsECamadas(t *testing.T) {
	s := newTestScene(t, 16)

	if len(s.AllItems) != 13 {
		t.Fatalf("len(AllItems) = %d, esperava 13", len(s.AllItems))
	}
	if len(s.Materials) != 13 {
		t.Fatalf("len(Materials) = %d, esperava 13", len(s.Materials))
	}

	camadas := []struct {
		layer RenderLayer
		count int
	}{
		{LayerOpaque, 3},
		{LayerMirrors, 6},
		{LayerReflected, 2},
		{LayerTransparent, 6},
		{LayerShadow, 2},
	}
	for _, c := range camadas {
		if got := len(s.Layers[c.layer]); got != c.count {
			t.Errorf("camada %d: %d itens, esperava %d", c.layer, got, c.count)
		}
	}

	// Slots de constantes fixos por item.
	chao := s.Layers[LayerOpaque][0]
	if chao.ObjCBIndex != 0 || chao.Mat.Name != "checkertile" {
		t.Errorf("chão: slot %d material %s", chao.ObjCBIndex, chao.Mat.Name)
	}

	a1 := s.Actors[PlayerOne]
	a2 := s.Actors[PlayerTwo]
	if a1 == nil || a2 == nil {
		t.Fatal("atores dos jogadores 1 e 2 deveriam existir")
	}
	if a1.Original.ObjCBIndex != 1 || a1.Reflected.ObjCBIndex != 2 || a1.Shadowed.ObjCBIndex != 3 {
		t.Errorf("slots do jogador 1: %d/%d/%d", a1.Original.ObjCBIndex, a1.Reflected.ObjCBIndex, a1.Shadowed.ObjCBIndex)
	}
	if a2.Original.ObjCBIndex != 4 || a2.Reflected.ObjCBIndex != 5 || a2.Shadowed.ObjCBIndex != 6 {
		t.Errorf("slots do jogador 2: %d/%d/%d", a2.Original.ObjCBIndex, a2.Reflected.ObjCBIndex, a2.Shadowed.ObjCBIndex)
	}
	if a1.Shadowed.Mat.Name != "shadowMat" || a2.Shadowed.Mat.Name != "shadowMat2" {
		t.Errorf("materiais de sombra: %s / %s", a1.Shadowed.Mat.Name, a2.Shadowed.Mat.Name)
	}

	// As seis faces do espelho ocupam os slots 7..12, todas com icemirror, e
	// aparecem tanto na marcação quanto no passe translúcido.
	for i, item := range s.Layers[LayerMirrors] {
		if item.ObjCBIndex != 7+i {
			t.Errorf("face %d: slot %d", i, item.ObjCBIndex)
		}
		if item.Mat.Name != "icemirror" {
			t.Errorf("face %d: material %s", i, item.Mat.Name)
		}
		if s.Layers[LayerTransparent][i] != item {
			t.Errorf("face %d deveria ser o mesmo item nas duas camadas", i)
		}
	}

	if got := a1.Position; got != (mgl32.Vec3{0, 1, -10}) {
		t.Errorf("spawn do jogador 1 = %v", got)
	}
	if got := a2.Position; got != (mgl32.Vec3{5, 1, -10}) {
		t.Errorf("spawn do jogador 2 = %v", got)
	}
}

func TestCenaMateriais(t *testing.T) {
	s := newTestScene(t, 16)

	casos := []struct {
		nome      string
		slot      int
		albedo    mgl32.Vec4
		roughness float32
	}{
		{"bricks", 0, mgl32.Vec4{1, 1, 1, 1}, 0.25},
		{"checkertile", 1, mgl32.Vec4{1, 1, 1, 1}, 0.3},
		{"icemirror", 2, mgl32.Vec4{1, 1, 1, 0.3}, 0.5},
		{"skullMat", 3, mgl32.Vec4{1, 1, 1, 1}, 0.3},
		{"skullMat2", 4, mgl32.Vec4{1, 1, 1, 1}, 0.3},
		{"shadowMat", 5, mgl32.Vec4{0, 0, 0, 0.5}, 0},
		{"shadowMat2", 6, mgl32.Vec4{0, 0, 0, 0.5}, 0},
		{"mirrorFront", 7, mgl32.Vec4{1, 1, 1, 0.3}, 0.5},
		{"mirrorBottom", 12, mgl32.Vec4{1, 1, 1, 0.3}, 0.5},
	}
	for _, c := range casos {
		m := s.Materials[c.nome]
		if m == nil {
			t.Errorf("material %s não existe", c.nome)
			continue
		}
		if m.CBIndex != c.slot {
			t.Errorf("%s: slot %d, esperava %d", c.nome, m.CBIndex, c.slot)
		}
		if m.DiffuseAlbedo != c.albedo {
			t.Errorf("%s: albedo %v", c.nome, m.DiffuseAlbedo)
		}
		if m.Roughness != c.roughness {
			t.Errorf("%s: roughness %v", c.nome, m.Roughness)
		}
	}
}

func TestCenaSubmeshesDoCubo(t *testing.T) {
	s := newTestScene(t, 16)

	cube := s.Geometries["cubeGeo"]
	if cube == nil {
		t.Fatal("cubeGeo não existe")
	}
	offsets := map[string]int{
		"Front":  0,
		"Back":   6,
		"Top":    12,
		"Bottom": 18,
		"Right":  24,
		"Left":   30,
	}
	for face, start := range offsets {
		sub, ok := cube.DrawArgs[face]
		if !ok {
			t.Errorf("submesh %s não existe", face)
			continue
		}
		if sub.StartIndexLocation != start || sub.IndexCount != 6 || sub.BaseVertexLocation != 0 {
			t.Errorf("%s: start %d count %d base %d", face, sub.StartIndexLocation, sub.IndexCount, sub.BaseVertexLocation)
		}
	}

	room := s.Geometries["roomGeo"]
	if room == nil {
		t.Fatal("roomGeo não existe")
	}
	if sub := room.DrawArgs["floor"]; sub.IndexCount != 6 {
		t.Errorf("submesh do chão: %+v", sub)
	}
}

func TestAnelDeFrames(t *testing.T) {
	s := newTestScene(t, 16)

	if len(s.Frames) != NumFrameResources {
		t.Fatalf("len(Frames) = %d", len(s.Frames))
	}
	for i, fr := range s.Frames {
		if len(fr.ObjectCB) != 13 || len(fr.MaterialCB) != 13 {
			t.Errorf("frame %d: %d objetos, %d materiais", i, len(fr.ObjectCB), len(fr.MaterialCB))
		}
		if fr.Fence != 0 {
			t.Errorf("frame %d: cerca inicial %d", i, fr.Fence)
		}
	}

	primeiro := s.CurrentFrame()
	segundo := s.AdvanceFrame()
	terceiro := s.AdvanceFrame()
	if primeiro == segundo || segundo == terceiro || primeiro == terceiro {
		t.Error("frames do anel deveriam ser distintos")
	}
	if s.AdvanceFrame() != primeiro {
		t.Error("o anel deveria voltar ao primeiro frame após três avanços")
	}
}
