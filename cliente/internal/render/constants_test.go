package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/shared/util"
)

func TestPassePrincipal(t *testing.T) {
	s := newTestScene(t, 16)

	eye := mgl32.Vec3{0, 2, -15}
	view := util.ViewFromBasis(eye, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	proj := util.PerspectiveLH(float32(math.Pi/4), 1, 1, 1000)

	s.UpdateMainPassCB(view, proj, eye, 800, 600, 12.5, 0.016)
	pass := &s.CurrentFrame().PassCB[0]

	if pass.View != view.Transpose() {
		t.Error("View deveria entrar transposta")
	}
	if pass.ViewProj != proj.Mul4(view).Transpose() {
		t.Error("ViewProj deveria ser proj·view transposta")
	}
	if pass.EyePosW != eye {
		t.Errorf("EyePosW = %v", pass.EyePosW)
	}
	if pass.RenderTargetSize != (mgl32.Vec2{800, 600}) {
		t.Errorf("RenderTargetSize = %v", pass.RenderTargetSize)
	}
	if pass.NearZ != 1 || pass.FarZ != 1000 {
		t.Errorf("planos de recorte: %v..%v", pass.NearZ, pass.FarZ)
	}
	if pass.TotalTime != 12.5 || pass.DeltaTime != 0.016 {
		t.Errorf("relógio: %v/%v", pass.TotalTime, pass.DeltaTime)
	}
	if pass.AmbientLight != (mgl32.Vec4{0.25, 0.25, 0.35, 1}) {
		t.Errorf("ambiente = %v", pass.AmbientLight)
	}
	if pass.FogColor != (mgl32.Vec4{0.7, 0.7, 0.7, 1}) || pass.FogStart != 5 || pass.FogRange != 150 {
		t.Errorf("nevoeiro: %v %v..%v", pass.FogColor, pass.FogStart, pass.FogRange)
	}

	luzes := []struct {
		dir      mgl32.Vec3
		strength mgl32.Vec3
	}{
		{mgl32.Vec3{0.57735, -0.57735, 0.57735}, mgl32.Vec3{0.6, 0.6, 0.6}},
		{mgl32.Vec3{-0.57735, -0.57735, 0.57735}, mgl32.Vec3{0.3, 0.3, 0.3}},
		{mgl32.Vec3{0, -0.707, -0.707}, mgl32.Vec3{0.15, 0.15, 0.15}},
	}
	for i, l := range luzes {
		if pass.Lights[i].Direction != l.dir || pass.Lights[i].Strength != l.strength {
			t.Errorf("luz %d: %+v", i, pass.Lights[i])
		}
	}
}

func TestPasseRefletidoEspelhaAsLuzes(t *testing.T) {
	s := newTestScene(t, 16)

	eye := mgl32.Vec3{0, 2, -15}
	view := util.ViewFromBasis(eye, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	proj := util.PerspectiveLH(float32(math.Pi/4), 1, 1, 1000)

	s.UpdateMainPassCB(view, proj, eye, 64, 64, 0, 0)
	s.UpdateReflectedPassCB()

	main := &s.CurrentFrame().PassCB[0]
	refl := &s.CurrentFrame().PassCB[1]

	// Mesma câmera e mesmos parâmetros; só as luzes mudam.
	if refl.View != main.View || refl.ViewProj != main.ViewProj || refl.EyePosW != main.EyePosW {
		t.Error("o passe refletido deveria herdar a câmera do principal")
	}
	if refl.AmbientLight != main.AmbientLight || refl.FogColor != main.FogColor {
		t.Error("ambiente e nevoeiro deveriam ser herdados")
	}

	// O espelho fica no plano z=0: refletir inverte só a componente z.
	for i := 0; i < 3; i++ {
		md := main.Lights[i].Direction
		rd := refl.Lights[i].Direction
		if !vecApprox(rd, mgl32.Vec3{md.X(), md.Y(), -md.Z()}) {
			t.Errorf("luz %d refletida = %v, original %v", i, rd, md)
		}
		if refl.Lights[i].Strength != main.Lights[i].Strength {
			t.Errorf("intensidade da luz %d mudou", i)
		}
	}

	// O principal não pode ser alterado pela derivação do refletido.
	if main.Lights[0].Direction != (mgl32.Vec3{0.57735, -0.57735, 0.57735}) {
		t.Errorf("luz principal alterada: %v", main.Lights[0].Direction)
	}
}
