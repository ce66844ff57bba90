package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/gpu"
	"MirrorVision/shared/util"
)

// Iluminação fixa da cena: três luzes direcionais e o ambiente azulado.
func defaultLights() [3]gpu.Light {
	return [3]gpu.Light{
		{Direction: mgl32.Vec3{0.57735, -0.57735, 0.57735}, Strength: mgl32.Vec3{0.6, 0.6, 0.6}},
		{Direction: mgl32.Vec3{-0.57735, -0.57735, 0.57735}, Strength: mgl32.Vec3{0.3, 0.3, 0.3}},
		{Direction: mgl32.Vec3{0, -0.707, -0.707}, Strength: mgl32.Vec3{0.15, 0.15, 0.15}},
	}
}

var (
	ambientLight = mgl32.Vec4{0.25, 0.25, 0.35, 1}
	fogColor     = mgl32.Vec4{0.7, 0.7, 0.7, 1}
)

const (
	fogStart float32 = 5
	fogRange float32 = 150

	nearZ float32 = 1
	farZ  float32 = 1000
)

// MainLightDirection é a direção da luz principal, usada na projeção
// planar das sombras.
func (s *Scene) MainLightDirection() mgl32.Vec3 {
	return s.lights[0].Direction
}

// FogColor é também a cor de limpeza do back buffer.
func FogColor() mgl32.Vec4 {
	return fogColor
}

// CurrentFrame devolve o frame resource do quadro corrente.
func (s *Scene) CurrentFrame() *FrameResource {
	return s.Frames[s.frameIndex]
}

// AdvanceFrame gira o anel e devolve o próximo frame resource. O chamador
// deve esperar a cerca do frame antes de regravar seus buffers.
func (s *Scene) AdvanceFrame() *FrameResource {
	s.frameIndex = (s.frameIndex + 1) % NumFrameResources
	return s.Frames[s.frameIndex]
}

// UpdateObjectCBs regrava o slot de cada item sujo no frame corrente. As
// matrizes entram transpostas; o contador de sujeira garante que a mutação
// alcance os três frames do anel.
func (s *Scene) UpdateObjectCBs() {
	fr := s.CurrentFrame()
	for _, item := range s.AllItems {
		if item.NumFramesDirty <= 0 {
			continue
		}
		fr.ObjectCB[item.ObjCBIndex] = gpu.ObjectConstants{
			World:        item.World.Transpose(),
			TexTransform: item.TexTransform.Transpose(),
		}
		item.NumFramesDirty--
	}
}

// UpdateMaterialCBs regrava o slot de cada material sujo no frame corrente.
func (s *Scene) UpdateMaterialCBs() {
	fr := s.CurrentFrame()
	for _, mat := range s.Materials {
		if mat.NumFramesDirty <= 0 {
			continue
		}
		fr.MaterialCB[mat.CBIndex] = gpu.MaterialConstants{
			DiffuseAlbedo: mat.DiffuseAlbedo,
			FresnelR0:     mat.FresnelR0,
			Roughness:     mat.Roughness,
			MatTransform:  mat.MatTransform.Transpose(),
		}
		mat.NumFramesDirty--
	}
}

// UpdateMainPassCB recalcula o passe principal do quadro corrente a partir
// da câmera e do relógio do jogo.
func (s *Scene) UpdateMainPassCB(view, proj mgl32.Mat4, eye mgl32.Vec3, width, height int, totalTime, deltaTime float32) {
	viewProj := proj.Mul4(view)

	s.mainPassCB = gpu.PassConstants{
		View:                view.Transpose(),
		InvView:             view.Inv().Transpose(),
		Proj:                proj.Transpose(),
		InvProj:             proj.Inv().Transpose(),
		ViewProj:            viewProj.Transpose(),
		InvViewProj:         viewProj.Inv().Transpose(),
		EyePosW:             eye,
		RenderTargetSize:    mgl32.Vec2{float32(width), float32(height)},
		InvRenderTargetSize: mgl32.Vec2{1 / float32(width), 1 / float32(height)},
		NearZ:               nearZ,
		FarZ:                farZ,
		TotalTime:           totalTime,
		DeltaTime:           deltaTime,
		AmbientLight:        ambientLight,
		FogColor:            fogColor,
		FogStart:            fogStart,
		FogRange:            fogRange,
	}
	for i, l := range s.lights {
		s.mainPassCB.Lights[i] = l
	}

	s.CurrentFrame().PassCB[0] = s.mainPassCB
}

// UpdateReflectedPassCB deriva o passe refletido do principal: mesma câmera,
// mesmos parâmetros, mas com as direções de luz espelhadas no plano do
// espelho para iluminar o mundo refletido com coerência.
func (s *Scene) UpdateReflectedPassCB() {
	s.reflectedPassCB = s.mainPassCB

	r := util.ReflectPlane(util.MirrorPlaneZ)
	for i := range s.lights {
		dir := s.lights[i].Direction
		reflected := r.Mul4x1(dir.Vec4(0)).Vec3()
		s.reflectedPassCB.Lights[i].Direction = reflected
	}

	s.CurrentFrame().PassCB[1] = s.reflectedPassCB
}
