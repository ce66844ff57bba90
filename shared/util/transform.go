package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrizes de cena na convenção coluna-vetor (v' = M·v), mão esquerda,
// profundidade de clip em [0,1]. As matrizes são transpostas apenas na
// borda de escrita dos constant buffers.

// ActorScale é a escala aplicada às caveiras dos jogadores.
const ActorScale = 0.45

// DefaultSpawn devolve a posição inicial de um jogador. Cliente e relay
// concordam nesses pontos antes de qualquer roster circular.
func DefaultSpawn(player uint16) mgl32.Vec3 {
	if player == 2 {
		return mgl32.Vec3{5, 1, -10}
	}
	return mgl32.Vec3{0, 1, -10}
}

// ComposeActorWorld monta a matriz de mundo de uma caveira:
// rotação de 90° em Y, escala 0.45 e translação até a posição do ator.
func ComposeActorWorld(p mgl32.Vec3) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DY(0.5 * math.Pi)
	scale := mgl32.Scale3D(ActorScale, ActorScale, ActorScale)
	offset := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	return offset.Mul4(scale).Mul4(rot)
}

// ReflectPlane devolve a matriz de reflexão em torno do plano
// a·x + b·y + c·z + d = 0, com (a,b,c) já normalizado.
func ReflectPlane(plane mgl32.Vec4) mgl32.Mat4 {
	a, b, c, d := plane.X(), plane.Y(), plane.Z(), plane.W()
	return mgl32.Mat4{
		1 - 2*a*a, -2 * a * b, -2 * a * c, 0,
		-2 * a * b, 1 - 2*b*b, -2 * b * c, 0,
		-2 * a * c, -2 * b * c, 1 - 2*c*c, 0,
		-2 * a * d, -2 * b * d, -2 * c * d, 1,
	}
}

// ShadowPlane devolve a matriz de projeção planar de sombra sobre o plano
// dado, na direção da luz. light.W()==0 indica luz direcional (toLight
// aponta PARA a luz, como em -Lights[0].Direction).
func ShadowPlane(plane, light mgl32.Vec4) mgl32.Mat4 {
	dot := plane.Dot(light)
	a, b, c, d := plane.X(), plane.Y(), plane.Z(), plane.W()
	lx, ly, lz, lw := light.X(), light.Y(), light.Z(), light.W()
	// M = dot(P,L)·I - L⊗P  (coluna-vetor)
	return mgl32.Mat4{
		dot - lx*a, -ly * a, -lz * a, -lw * a,
		-lx * b, dot - ly*b, -lz * b, -lw * b,
		-lx * c, -ly * c, dot - lz*c, -lw * c,
		-lx * d, -ly * d, -lz * d, dot - lw*d,
	}
}

// MirrorPlaneZ é o plano do espelho (plano XY em z=0).
var MirrorPlaneZ = mgl32.Vec4{0, 0, 1, 0}

// GroundPlaneY é o plano do chão (plano XZ em y=0).
var GroundPlaneY = mgl32.Vec4{0, 1, 0, 0}

// ShadowBias evita z-fight da sombra com o chão.
const ShadowBias = 0.001

// PerspectiveLH monta a projeção perspectiva mão-esquerda com clip z em [0,1].
func PerspectiveLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	h := float32(1.0 / math.Tan(float64(fovY)*0.5))
	w := h / aspect
	r := far / (far - near)
	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, r, 1,
		0, 0, -near * r, 0,
	}
}

// ViewFromBasis monta a matriz de view a partir da base ortonormal da câmera
// (right/up/look) e da posição, na convenção mão-esquerda.
func ViewFromBasis(pos, right, up, look mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4{
		right.X(), up.X(), look.X(), 0,
		right.Y(), up.Y(), look.Y(), 0,
		right.Z(), up.Z(), look.Z(), 0,
		-pos.Dot(right), -pos.Dot(up), -pos.Dot(look), 1,
	}
}
