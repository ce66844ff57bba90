package render

import "MirrorVision/cliente/internal/gpu"

// buildPipelineStates monta os cinco estados de pipeline da cena. O opaco é
// a base; os demais derivam dele mudando só o necessário.
func buildPipelineStates() map[string]*gpu.PipelineState {
	psos := make(map[string]*gpu.PipelineState, 5)

	opaque := gpu.DefaultPipelineState("opaque")
	psos["opaque"] = &opaque

	// Transparência clássica: cor = src·alpha + dst·(1-alpha).
	transparent := gpu.DefaultPipelineState("transparent")
	transparent.Blend.Enable = true
	transparent.Blend.SrcFactor = gpu.BlendSrcAlpha
	transparent.Blend.DstFactor = gpu.BlendInvSrcAlpha
	psos["transparent"] = &transparent

	// Marca a área visível do espelho no stencil sem tocar cor nem
	// profundidade. O teste de profundidade continua ativo para que só a
	// parte desobstruída do espelho seja marcada.
	mark := gpu.DefaultPipelineState("markStencilMirrors")
	mark.Blend.ColorWriteMask = 0
	mark.Depth.WriteEnable = false
	mark.Stencil.Enable = true
	mark.Stencil.Func = gpu.CompareAlways
	mark.Stencil.PassOp = gpu.StencilReplace
	psos["markStencilMirrors"] = &mark

	// Desenha os reflexos apenas onde o stencil tem o valor de referência.
	// A reflexão inverte o sentido de enrolamento dos triângulos, então a
	// face frontal passa a ser a anti-horária.
	reflections := gpu.DefaultPipelineState("drawStencilReflections")
	reflections.Raster.FrontCounterClockwise = true
	reflections.Stencil.Enable = true
	reflections.Stencil.Func = gpu.CompareEqual
	psos["drawStencilReflections"] = &reflections

	// Sombra projetada: mistura translúcida que incrementa o stencil ao
	// passar, para cada pixel do chão escurecer no máximo uma vez mesmo com
	// triângulos da caveira sobrepostos na projeção.
	shadow := gpu.DefaultPipelineState("shadow")
	shadow.Blend.Enable = true
	shadow.Blend.SrcFactor = gpu.BlendSrcAlpha
	shadow.Blend.DstFactor = gpu.BlendInvSrcAlpha
	shadow.Stencil.Enable = true
	shadow.Stencil.Func = gpu.CompareEqual
	shadow.Stencil.PassOp = gpu.StencilIncr
	psos["shadow"] = &shadow

	return psos
}

// DrawLayer emite os draws de uma camada lendo as constantes do frame dado.
func (s *Scene) DrawLayer(cl *gpu.CommandList, fr *FrameResource, layer RenderLayer) {
	for _, item := range s.Layers[layer] {
		cl.DrawIndexed(
			item.Geo.Mesh,
			item.Mat.DiffuseTexture,
			item.IndexCount,
			item.StartIndexLocation,
			item.BaseVertexLocation,
			&fr.ObjectCB[item.ObjCBIndex],
			&fr.MaterialCB[item.Mat.CBIndex],
		)
	}
}

// RecordFrame grava a sequência completa de passes de um quadro:
//
//  1. limpa cor (cor do nevoeiro) e profundidade/stencil;
//  2. opacos com o passe principal;
//  3. marca as faces do espelho no stencil com referência 1;
//  4. reflexos com o passe refletido, onde o stencil é 1;
//  5. faces translúcidas do espelho com o passe principal e referência 0;
//  6. sombras projetadas, incrementando o stencil.
func (s *Scene) RecordFrame(cl *gpu.CommandList, fr *FrameResource) {
	fog := FogColor()
	cl.ClearColor([4]float32{fog.X(), fog.Y(), fog.Z(), fog.W()})
	cl.ClearDepthStencil(1, 0)

	cl.SetPassConstants(&fr.PassCB[0])
	cl.SetPipeline(s.PSOs["opaque"])
	s.DrawLayer(cl, fr, LayerOpaque)

	cl.SetStencilRef(1)
	cl.SetPipeline(s.PSOs["markStencilMirrors"])
	s.DrawLayer(cl, fr, LayerMirrors)

	cl.SetPassConstants(&fr.PassCB[1])
	cl.SetPipeline(s.PSOs["drawStencilReflections"])
	s.DrawLayer(cl, fr, LayerReflected)

	cl.SetPassConstants(&fr.PassCB[0])
	cl.SetStencilRef(0)
	cl.SetPipeline(s.PSOs["transparent"])
	s.DrawLayer(cl, fr, LayerTransparent)

	cl.SetPipeline(s.PSOs["shadow"])
	s.DrawLayer(cl, fr, LayerShadow)
}
