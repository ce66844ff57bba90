package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func vecNear(a, b mgl32.Vec4, tol float32) bool {
	for i := 0; i < 4; i++ {
		d := a[i] - b[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func TestReflectPlaneTwiceIsIdentity(t *testing.T) {
	planes := []mgl32.Vec4{
		MirrorPlaneZ,
		GroundPlaneY,
		{0.70710678, 0.70710678, 0, 0},
	}
	points := []mgl32.Vec4{
		{0, 1, -10, 1},
		{5, 1, -10, 1},
		{-3, 2, 7, 1},
	}

	for _, plane := range planes {
		r := ReflectPlane(plane)
		rr := r.Mul4(r)
		for _, p := range points {
			got := rr.Mul4x1(p)
			if !vecNear(got, p, eps) {
				t.Errorf("Reflect(%v) aplicado duas vezes moveu %v para %v", plane, p, got)
			}
		}
	}
}

func TestReflectPlaneZFlipsZ(t *testing.T) {
	r := ReflectPlane(MirrorPlaneZ)
	p := mgl32.Vec4{2, 3, -4, 1}
	got := r.Mul4x1(p)
	want := mgl32.Vec4{2, 3, 4, 1}
	if !vecNear(got, want, eps) {
		t.Errorf("reflexão em z=0 de %v = %v, esperado %v", p, got, want)
	}
}

func TestShadowPlaneProjectsOntoGround(t *testing.T) {
	lightDir := mgl32.Vec3{0.57735, -0.57735, 0.57735}
	toLight := mgl32.Vec4{-lightDir.X(), -lightDir.Y(), -lightDir.Z(), 0}
	s := ShadowPlane(GroundPlaneY, toLight)

	points := []mgl32.Vec4{
		{0, 1, -10, 1},
		{5, 2, -8, 1},
		{-1, 0.5, 0, 1},
	}
	for _, p := range points {
		proj := s.Mul4x1(p)
		if proj.W() == 0 {
			t.Fatalf("projeção de %v degenerou (w=0)", p)
		}
		y := proj.Y() / proj.W()
		if y < -eps || y > eps {
			t.Errorf("sombra de %v ficou com y=%v, esperado 0", p, y)
		}
	}
}

func TestShadowPlanePointOnPlaneStays(t *testing.T) {
	toLight := mgl32.Vec4{0, 1, 0, 0}
	s := ShadowPlane(GroundPlaneY, toLight)
	p := mgl32.Vec4{3, 0, -5, 1}
	proj := s.Mul4x1(p)
	inv := 1 / proj.W()
	got := mgl32.Vec4{proj.X() * inv, proj.Y() * inv, proj.Z() * inv, 1}
	if !vecNear(got, p, eps) {
		t.Errorf("ponto no plano moveu de %v para %v", p, got)
	}
}

func TestComposeActorWorldPlacesOrigin(t *testing.T) {
	p := mgl32.Vec3{5, 1, -10}
	w := ComposeActorWorld(p)
	got := w.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vecNear(got, mgl32.Vec4{5, 1, -10, 1}, eps) {
		t.Errorf("origem do ator foi para %v, esperado %v", got, p)
	}
}

func TestComposeActorWorldRotatesAndScales(t *testing.T) {
	// Rotação de +90° em Y leva +x para -z; escala 0.45.
	w := ComposeActorWorld(mgl32.Vec3{0, 0, 0})
	got := w.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{0, 0, -0.45, 1}
	if !vecNear(got, want, 1e-4) {
		t.Errorf("RotY(π/2)·Scale(0.45) de +x = %v, esperado %v", got, want)
	}
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	proj := PerspectiveLH(0.25*3.14159265, 16.0/9.0, 1.0, 1000.0)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	if z := near.Z() / near.W(); z < -eps || z > eps {
		t.Errorf("plano near mapeou para z=%v, esperado 0", z)
	}

	far := proj.Mul4x1(mgl32.Vec4{0, 0, 1000, 1})
	if z := far.Z() / far.W(); z < 1-1e-4 || z > 1+1e-4 {
		t.Errorf("plano far mapeou para z=%v, esperado 1", z)
	}
}

func TestViewFromBasisEyeAtOrigin(t *testing.T) {
	pos := mgl32.Vec3{0, 2, -15}
	view := ViewFromBasis(pos, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})

	eye := view.Mul4x1(mgl32.Vec4{0, 2, -15, 1})
	if !vecNear(eye, mgl32.Vec4{0, 0, 0, 1}, eps) {
		t.Errorf("posição da câmera mapeou para %v, esperado origem", eye)
	}

	// Um ponto 10 unidades à frente fica em +z no espaço da câmera.
	front := view.Mul4x1(mgl32.Vec4{0, 2, -5, 1})
	if !vecNear(front, mgl32.Vec4{0, 0, 10, 1}, eps) {
		t.Errorf("ponto à frente mapeou para %v, esperado (0,0,10)", front)
	}
}
