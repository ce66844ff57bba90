package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/cliente/internal/gpu"
)

// RenderLayer separa os itens por passe de desenho. A ordem dos passes num
// quadro é fixa: opacos, marcação do espelho, reflexos, transparentes, sombras.
type RenderLayer int

const (
	LayerOpaque RenderLayer = iota
	LayerMirrors
	LayerReflected
	LayerTransparent
	LayerShadow
	LayerCount
)

// Material descreve um material com slot fixo no buffer de constantes.
// NumFramesDirty força a reescrita do slot em cada frame do anel após
// uma mutação.
type Material struct {
	Name           string
	CBIndex        int
	DiffuseTexture gpu.TextureID
	DiffuseAlbedo  mgl32.Vec4
	FresnelR0      mgl32.Vec3
	Roughness      float32
	MatTransform   mgl32.Mat4
	NumFramesDirty int
}

// RenderItem liga um submesh de uma geometria a um material e a um slot de
// constantes por objeto. As matrizes ficam na convenção coluna-vetor e só
// são transpostas na escrita do buffer.
type RenderItem struct {
	World              mgl32.Mat4
	TexTransform       mgl32.Mat4
	NumFramesDirty     int
	ObjCBIndex         int
	Mat                *Material
	Geo                *MeshGeometry
	IndexCount         int
	StartIndexLocation int
	BaseVertexLocation int
}

// Submesh delimita um trecho contíguo do index buffer de uma geometria.
type Submesh struct {
	IndexCount         int
	StartIndexLocation int
	BaseVertexLocation int
}

// MeshGeometry é uma malha registrada no dispositivo com seus submeshes
// nomeados.
type MeshGeometry struct {
	Name     string
	Mesh     gpu.MeshID
	DrawArgs map[string]Submesh
}
