package render

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/assets"
	"MirrorVision/cliente/internal/gpu"
	"MirrorVision/shared/util"
)

// Identidades fixas dos dois jogadores da sala.
const (
	PlayerOne uint16 = 1
	PlayerTwo uint16 = 2
)

// Scene é o grafo de cena completo: geometrias, materiais, itens por camada,
// atores controlados por jogadores e o anel de frame resources.
type Scene struct {
	Device *gpu.Device

	Geometries map[string]*MeshGeometry
	Materials  map[string]*Material
	Textures   map[string]gpu.TextureID

	AllItems []*RenderItem
	Layers   [LayerCount][]*RenderItem
	Actors   map[uint16]*Actor

	PSOs map[string]*gpu.PipelineState

	Frames     []*FrameResource
	frameIndex int

	lights          [3]gpu.Light
	mainPassCB      gpu.PassConstants
	reflectedPassCB gpu.PassConstants
}

// NewScene monta a cena fixa: chão, cubo espelhado de seis faces e uma
// caveira por jogador com os clones refletido e sombreado. Malha nil vira
// geometria vazia: o ator continua existindo para a sincronização de rede,
// mas os itens dele não desenham nada.
func NewScene(dev *gpu.Device, skull1, skull2 *assets.MeshData) *Scene {
	if skull1 == nil {
		skull1 = &assets.MeshData{}
	}
	if skull2 == nil {
		skull2 = &assets.MeshData{}
	}

	s := &Scene{
		Device:     dev,
		Geometries: make(map[string]*MeshGeometry),
		Materials:  make(map[string]*Material),
		Textures:   make(map[string]gpu.TextureID),
		Actors:     make(map[uint16]*Actor),
	}

	s.lights = defaultLights()

	s.loadTextures()
	s.buildRoomGeometry()
	s.buildCubeMirrorGeometry()
	s.buildSkullGeometry("skullGeo", "skull", skull1)
	s.buildSkullGeometry("skullGeo2", "skull2", skull2)
	s.buildMaterials()
	s.buildRenderItems()

	s.Frames = make([]*FrameResource, NumFrameResources)
	for i := range s.Frames {
		s.Frames[i] = NewFrameResource(len(s.AllItems), len(s.Materials))
	}

	s.PSOs = buildPipelineStates()

	for _, a := range s.Actors {
		a.SyncTransforms(s.MainLightDirection())
	}

	log.Printf("[Render] Cena montada: %d itens, %d materiais, %d geometrias",
		len(s.AllItems), len(s.Materials), len(s.Geometries))
	return s
}

// loadTextures registra as texturas procedurais no dispositivo.
func (s *Scene) loadTextures() {
	registra := func(name string, w, h int, px []uint8) {
		s.Textures[name] = s.Device.CreateTexture(w, h, px)
	}
	w, h, px := assets.Bricks(64)
	registra("bricksTex", w, h, px)
	w, h, px = assets.Checkerboard(64, 8)
	registra("checkboardTex", w, h, px)
	w, h, px = assets.Ice(64)
	registra("iceTex", w, h, px)
	w, h, px = assets.White1x1()
	registra("white1x1Tex", w, h, px)
}

// buildRoomGeometry cria o chão: um quad em y=0 com UV repetida 4x.
func (s *Scene) buildRoomGeometry() {
	vertices := []gpu.Vertex{
		{Pos: mgl32.Vec3{-7, 0, -15}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 4}},
		{Pos: mgl32.Vec3{-7, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{11, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{4, 0}},
		{Pos: mgl32.Vec3{11, 0, -15}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{4, 4}},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	s.Geometries["roomGeo"] = &MeshGeometry{
		Name: "roomGeo",
		Mesh: s.Device.CreateMesh(vertices, indices),
		DrawArgs: map[string]Submesh{
			"floor": {IndexCount: 6, StartIndexLocation: 0, BaseVertexLocation: 0},
		},
	}
}

// buildCubeMirrorGeometry cria o cubo espelhado: 24 vértices (4 por face,
// normais para fora) e um submesh por face para os itens de marcação e
// desenho do espelho.
func (s *Scene) buildCubeMirrorGeometry() {
	vertices := []gpu.Vertex{
		// Frente (z = +1)
		{Pos: mgl32.Vec3{-1, -1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{1, -1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{-1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}},
		// Trás (z = -1)
		{Pos: mgl32.Vec3{1, -1, -1}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{-1, -1, -1}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{-1, 1, -1}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{1, 1, -1}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{0, 1}},
		// Topo (y = +1)
		{Pos: mgl32.Vec3{-1, 1, -1}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{1, 1, -1}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{1, 1, 1}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{-1, 1, 1}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 1}},
		// Base (y = -1)
		{Pos: mgl32.Vec3{-1, -1, 1}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{1, -1, 1}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{1, -1, -1}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{-1, -1, -1}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{0, 1}},
		// Direita (x = +1)
		{Pos: mgl32.Vec3{1, -1, 1}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{1, -1, -1}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{1, 1, -1}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{1, 1, 1}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{0, 1}},
		// Esquerda (x = -1)
		{Pos: mgl32.Vec3{-1, -1, -1}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{-1, -1, 1}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{-1, 1, 1}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec3{-1, 1, -1}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{0, 1}},
	}

	indices := make([]uint16, 0, 36)
	for face := uint16(0); face < 6; face++ {
		b := 4 * face
		indices = append(indices, b, b+1, b+2, b, b+2, b+3)
	}

	faces := []string{"Front", "Back", "Top", "Bottom", "Right", "Left"}
	drawArgs := make(map[string]Submesh, len(faces))
	for i, face := range faces {
		drawArgs[face] = Submesh{IndexCount: 6, StartIndexLocation: 6 * i, BaseVertexLocation: 0}
	}

	s.Geometries["cubeGeo"] = &MeshGeometry{
		Name:     "cubeGeo",
		Mesh:     s.Device.CreateMesh(vertices, indices),
		DrawArgs: drawArgs,
	}
}

// buildSkullGeometry registra uma malha de caveira carregada do disco.
func (s *Scene) buildSkullGeometry(geoName, submeshName string, data *assets.MeshData) {
	s.Geometries[geoName] = &MeshGeometry{
		Name: geoName,
		Mesh: s.Device.CreateMesh(data.Vertices, data.Indices),
		DrawArgs: map[string]Submesh{
			submeshName: {IndexCount: len(data.Indices), StartIndexLocation: 0, BaseVertexLocation: 0},
		},
	}
}

// buildMaterials preenche a tabela de materiais. Os slots são fixos porque
// os buffers de constantes são indexados por CBIndex, não por nome.
func (s *Scene) buildMaterials() {
	add := func(name string, cbIndex int, tex string, albedo mgl32.Vec4, fresnel mgl32.Vec3, roughness float32) {
		s.Materials[name] = &Material{
			Name:           name,
			CBIndex:        cbIndex,
			DiffuseTexture: s.Textures[tex],
			DiffuseAlbedo:  albedo,
			FresnelR0:      fresnel,
			Roughness:      roughness,
			MatTransform:   mgl32.Ident4(),
			NumFramesDirty: NumFrameResources,
		}
	}

	add("bricks", 0, "bricksTex", mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0.05, 0.05, 0.05}, 0.25)
	add("checkertile", 1, "checkboardTex", mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0.07, 0.07, 0.07}, 0.3)
	add("icemirror", 2, "iceTex", mgl32.Vec4{1, 1, 1, 0.3}, mgl32.Vec3{0.1, 0.1, 0.1}, 0.5)
	add("skullMat", 3, "white1x1Tex", mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0.05, 0.05, 0.05}, 0.3)
	add("skullMat2", 4, "white1x1Tex", mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0.05, 0.05, 0.05}, 0.3)
	add("shadowMat", 5, "white1x1Tex", mgl32.Vec4{0, 0, 0, 0.5}, mgl32.Vec3{0.001, 0.001, 0.001}, 0)
	add("shadowMat2", 6, "white1x1Tex", mgl32.Vec4{0, 0, 0, 0.5}, mgl32.Vec3{0.001, 0.001, 0.001}, 0)

	// Materiais por face do espelho. As faces desenham com icemirror, mas os
	// slots ficam reservados para variação por face.
	faces := []string{"Front", "Back", "Left", "Right", "Top", "Bottom"}
	for i, face := range faces {
		add("mirror"+face, 7+i, "white1x1Tex", mgl32.Vec4{1, 1, 1, 0.3}, mgl32.Vec3{0.1, 0.1, 0.1}, 0.5)
	}
}

// buildRenderItems cria os itens em slots fixos de constantes:
// 0 chão; 1-3 caveira do jogador 1 (original, refletida, sombra);
// 4-6 caveira do jogador 2; 7-12 as seis faces do cubo espelhado.
func (s *Scene) buildRenderItems() {
	floorItem := s.newItem(0, "checkertile", "roomGeo", "floor")
	s.Layers[LayerOpaque] = append(s.Layers[LayerOpaque], floorItem)

	s.Actors[PlayerOne] = s.buildActor(PlayerOne, util.DefaultSpawn(PlayerOne), 1, "skullMat", "shadowMat", "skullGeo", "skull")
	s.Actors[PlayerTwo] = s.buildActor(PlayerTwo, util.DefaultSpawn(PlayerTwo), 4, "skullMat2", "shadowMat2", "skullGeo2", "skull2")

	// O cubo fica sobre o chão, com o dobro do tamanho unitário.
	cubeWorld := mgl32.Translate3D(0, 2, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	faces := []string{"Front", "Back", "Right", "Left", "Top", "Bottom"}
	for i, face := range faces {
		item := s.newItem(7+i, "icemirror", "cubeGeo", face)
		item.World = cubeWorld
		s.Layers[LayerMirrors] = append(s.Layers[LayerMirrors], item)
		s.Layers[LayerTransparent] = append(s.Layers[LayerTransparent], item)
	}
}

// buildActor cria o trio de itens de um jogador e os distribui nas camadas
// de opacos, reflexos e sombras.
func (s *Scene) buildActor(player uint16, spawn mgl32.Vec3, baseObjIndex int, matName, shadowMatName, geoName, submeshName string) *Actor {
	original := s.newItem(baseObjIndex, matName, geoName, submeshName)
	reflected := s.newItem(baseObjIndex+1, matName, geoName, submeshName)
	shadowed := s.newItem(baseObjIndex+2, shadowMatName, geoName, submeshName)

	s.Layers[LayerOpaque] = append(s.Layers[LayerOpaque], original)
	s.Layers[LayerReflected] = append(s.Layers[LayerReflected], reflected)
	s.Layers[LayerShadow] = append(s.Layers[LayerShadow], shadowed)

	return &Actor{
		Player:    player,
		Position:  spawn,
		Health:    100,
		Original:  original,
		Reflected: reflected,
		Shadowed:  shadowed,
	}
}

// newItem cria um item de render já anexado a AllItems.
func (s *Scene) newItem(objIndex int, matName, geoName, submeshName string) *RenderItem {
	geo := s.Geometries[geoName]
	sub := geo.DrawArgs[submeshName]
	item := &RenderItem{
		World:              mgl32.Ident4(),
		TexTransform:       mgl32.Ident4(),
		NumFramesDirty:     NumFrameResources,
		ObjCBIndex:         objIndex,
		Mat:                s.Materials[matName],
		Geo:                geo,
		IndexCount:         sub.IndexCount,
		StartIndexLocation: sub.StartIndexLocation,
		BaseVertexLocation: sub.BaseVertexLocation,
	}
	s.AllItems = append(s.AllItems, item)
	return item
}
