package gpu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// Cena mínima dos testes: matrizes identidade, luz só ambiente e textura
// branca. Os vértices são dados direto em NDC, então a cor final de um
// pixel é exatamente o albedo difuso do material.
type testRig struct {
	dev   *Device
	cl    *CommandList
	tex   TextureID
	obj   ObjectConstants
	pass  PassConstants
	fence uint64
}

func newTestRig(size int) *testRig {
	r := &testRig{
		dev: NewDevice(size, size),
		cl:  NewCommandList(),
	}
	r.tex = r.dev.CreateTexture(1, 1, []uint8{255, 255, 255, 255})
	r.obj = ObjectConstants{World: mgl32.Ident4(), TexTransform: mgl32.Ident4()}
	r.pass = PassConstants{
		View:         mgl32.Ident4(),
		Proj:         mgl32.Ident4(),
		ViewProj:     mgl32.Ident4(),
		AmbientLight: mgl32.Vec4{1, 1, 1, 1},
	}
	return r
}

func (r *testRig) flush() {
	r.dev.Submit(r.cl)
	r.cl.Reset()
	r.fence++
	r.dev.Signal(r.fence)
	r.dev.WaitFence(r.fence)
}

func solidMaterial(rc, g, b, a float32) MaterialConstants {
	return MaterialConstants{
		DiffuseAlbedo: mgl32.Vec4{rc, g, b, a},
		Roughness:     1,
		MatTransform:  mgl32.Ident4(),
	}
}

// fullscreenTriangle devolve uma malha que cobre o viewport inteiro com
// enrolamento frontal (horário na tela).
func fullscreenTriangle(dev *Device, depth float32) MeshID {
	verts := []Vertex{
		{Pos: mgl32.Vec3{-1, -1, depth}, Normal: mgl32.Vec3{0, 0, -1}},
		{Pos: mgl32.Vec3{-1, 3, depth}, Normal: mgl32.Vec3{0, 0, -1}},
		{Pos: mgl32.Vec3{3, -1, depth}, Normal: mgl32.Vec3{0, 0, -1}},
	}
	return dev.CreateMesh(verts, []uint16{0, 1, 2})
}

func TestFenceOrdering(t *testing.T) {
	r := newTestRig(16)
	defer r.dev.Destroy()

	if got := r.dev.CompletedFence(); got != 0 {
		t.Fatalf("CompletedFence inicial = %d, want 0", got)
	}

	r.cl.ClearColor([4]float32{0, 0, 0, 1})
	r.flush()

	if got := r.dev.CompletedFence(); got != 1 {
		t.Errorf("CompletedFence após flush = %d, want 1", got)
	}

	r.dev.Signal(7)
	r.dev.WaitFence(7)
	if got := r.dev.CompletedFence(); got != 7 {
		t.Errorf("CompletedFence = %d, want 7", got)
	}
}

func TestConstantsLidasNaExecucao(t *testing.T) {
	r := newTestRig(16)
	defer r.dev.Destroy()

	mesh := fullscreenTriangle(r.dev, 0.5)
	ps := DefaultPipelineState("opaco")
	mat := solidMaterial(1, 0, 0, 1)

	r.cl.ClearColor([4]float32{0, 0, 0, 1})
	r.cl.ClearDepthStencil(1, 0)
	r.cl.SetPipeline(&ps)
	r.cl.SetPassConstants(&r.pass)
	r.cl.DrawIndexed(mesh, r.tex, 3, 0, 0, &r.obj, &mat)
	r.flush()

	if px := r.dev.ReadPixel(8, 8); px[0] != 255 || px[1] != 0 {
		t.Fatalf("pixel após desenho vermelho = %v", px)
	}

	// O fence venceu: o slot de material pode ser reescrito e o próximo
	// desenho deve enxergar o novo valor pelo mesmo ponteiro.
	mat.DiffuseAlbedo = mgl32.Vec4{0, 1, 0, 1}

	r.cl.ClearDepthStencil(1, 0)
	r.cl.SetPipeline(&ps)
	r.cl.SetPassConstants(&r.pass)
	r.cl.DrawIndexed(mesh, r.tex, 3, 0, 0, &r.obj, &mat)
	r.flush()

	if px := r.dev.ReadPixel(8, 8); px[1] != 255 || px[0] != 0 {
		t.Errorf("pixel após reescrever o material = %v, esperava verde", px)
	}
}

func TestPresentRotation(t *testing.T) {
	r := newTestRig(8)
	defer r.dev.Destroy()

	r.cl.ClearColor([4]float32{1, 0, 0, 1})
	r.dev.Submit(r.cl)
	r.cl.Reset()
	r.dev.Present()
	r.fence++
	r.dev.Signal(r.fence)
	r.dev.WaitFence(r.fence)

	frame := r.dev.AcquireFrame()
	if frame[0] != 255 || frame[1] != 0 {
		t.Fatalf("frame apresentado começa com %v, esperava vermelho", frame[:4])
	}

	r.cl.ClearColor([4]float32{0, 0, 1, 1})
	r.dev.Submit(r.cl)
	r.cl.Reset()
	r.dev.Present()
	r.fence++
	r.dev.Signal(r.fence)
	r.dev.WaitFence(r.fence)

	frame = r.dev.AcquireFrame()
	if frame[2] != 255 || frame[0] != 0 {
		t.Fatalf("segundo frame começa com %v, esperava azul", frame[:4])
	}

	// Sem presente novo, o mesmo buffer volta.
	again := r.dev.AcquireFrame()
	if &again[0] != &frame[0] {
		t.Error("AcquireFrame sem presente novo devolveu outro buffer")
	}
}
