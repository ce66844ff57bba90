package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/gpu"
	"MirrorVision/shared/util"
)

func TestEstadosDePipeline(t *testing.T) {
	psos := buildPipelineStates()

	nomes := []string{"opaque", "transparent", "markStencilMirrors", "drawStencilReflections", "shadow"}
	for _, nome := range nomes {
		if psos[nome] == nil {
			t.Fatalf("pipeline %s não existe", nome)
		}
	}

	opaque := psos["opaque"]
	if opaque.Blend.Enable || opaque.Stencil.Enable || !opaque.Depth.WriteEnable || opaque.Depth.Func != gpu.CompareLess {
		t.Errorf("opaque fora do padrão: %+v", opaque)
	}

	tr := psos["transparent"]
	if !tr.Blend.Enable || tr.Blend.SrcFactor != gpu.BlendSrcAlpha || tr.Blend.DstFactor != gpu.BlendInvSrcAlpha {
		t.Errorf("mistura do transparent: %+v", tr.Blend)
	}
	if tr.Stencil.Enable {
		t.Error("transparent não usa stencil")
	}

	mark := psos["markStencilMirrors"]
	if mark.Blend.ColorWriteMask != 0 {
		t.Error("a marcação do espelho não pode escrever cor")
	}
	if mark.Depth.WriteEnable || mark.Depth.Func != gpu.CompareLess {
		t.Errorf("profundidade da marcação: %+v", mark.Depth)
	}
	if !mark.Stencil.Enable || mark.Stencil.Func != gpu.CompareAlways || mark.Stencil.PassOp != gpu.StencilReplace {
		t.Errorf("stencil da marcação: %+v", mark.Stencil)
	}
	if mark.Stencil.FailOp != gpu.StencilKeep || mark.Stencil.DepthFailOp != gpu.StencilKeep {
		t.Errorf("ops de falha da marcação: %+v", mark.Stencil)
	}

	refl := psos["drawStencilReflections"]
	if !refl.Raster.FrontCounterClockwise {
		t.Error("reflexos precisam inverter a face frontal")
	}
	if !refl.Stencil.Enable || refl.Stencil.Func != gpu.CompareEqual || refl.Stencil.PassOp != gpu.StencilKeep {
		t.Errorf("stencil dos reflexos: %+v", refl.Stencil)
	}
	if !refl.Depth.WriteEnable {
		t.Error("reflexos escrevem profundidade")
	}

	sh := psos["shadow"]
	if !sh.Blend.Enable || sh.Blend.SrcFactor != gpu.BlendSrcAlpha {
		t.Errorf("mistura da sombra: %+v", sh.Blend)
	}
	if !sh.Stencil.Enable || sh.Stencil.Func != gpu.CompareEqual || sh.Stencil.PassOp != gpu.StencilIncr {
		t.Errorf("stencil da sombra: %+v", sh.Stencil)
	}

	for _, nome := range nomes {
		p := psos[nome]
		if p.Stencil.ReadMask != 0xff || p.Stencil.WriteMask != 0xff {
			t.Errorf("%s: máscaras de stencil %x/%x", nome, p.Stencil.ReadMask, p.Stencil.WriteMask)
		}
		if p.Raster.Cull != gpu.CullBack {
			t.Errorf("%s: cull %v", nome, p.Raster.Cull)
		}
	}
}

// TestQuadroCompleto grava um quadro inteiro da cena real e confere o
// rastro que cada passe deixa nos buffers: o stencil marcado na área do
// espelho, a profundidade escrita pela face translúcida e o nevoeiro nos
// pixels sem geometria.
func TestQuadroCompleto(t *testing.T) {
	s := newTestScene(t, 64)
	dev := s.Device

	eye := mgl32.Vec3{0, 2, -15}
	view := util.ViewFromBasis(eye, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	proj := util.PerspectiveLH(float32(math.Pi/4), 1, 1, 1000)

	s.IntegrateMovement(0, PlayerOne)
	s.UpdateObjectCBs()
	s.UpdateMaterialCBs()
	s.UpdateMainPassCB(view, proj, eye, 64, 64, 0, 0)
	s.UpdateReflectedPassCB()

	cl := gpu.NewCommandList()
	s.RecordFrame(cl, s.CurrentFrame())
	dev.Submit(cl)
	dev.Signal(1)
	dev.WaitFence(1)

	// O centro da tela olha direto para a face traseira do cubo espelhado:
	// marcada com 1 na passagem de marcação e intocada pelas seguintes.
	if got := dev.ReadStencil(32, 32); got != 1 {
		t.Errorf("stencil no centro = %d, esperava 1", got)
	}
	// A face translúcida escreve profundidade ao ser desenhada por cima.
	if got := dev.ReadDepth(32, 32); got >= 1 {
		t.Errorf("profundidade no centro = %v, esperava < 1", got)
	}

	// Canto superior: sem geometria, só o nevoeiro da limpeza.
	if got := dev.ReadStencil(2, 2); got != 0 {
		t.Errorf("stencil no canto = %d", got)
	}
	if got := dev.ReadDepth(2, 2); got != 1 {
		t.Errorf("profundidade no canto = %v", got)
	}
	px := dev.ReadPixel(2, 2)
	if px[0] != 179 || px[1] != 179 || px[2] != 179 {
		t.Errorf("cor do canto = %v, esperava o cinza do nevoeiro", px)
	}

	// Abaixo do horizonte o chão opaco cobre o quadro.
	if got := dev.ReadDepth(32, 60); got >= 1 {
		t.Errorf("profundidade no chão = %v, esperava < 1", got)
	}
}
