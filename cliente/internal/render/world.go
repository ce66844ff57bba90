package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/shared/proto/mvnet"
	"MirrorVision/shared/util"
)

// MoveSpeed é a velocidade de deslocamento dos atores, em unidades por
// segundo por eixo. O relay integra com a mesma constante.
const MoveSpeed = mvnet.MoveUnitsPerSecond

// Intent é a última intenção de movimento conhecida de um jogador. Ela é
// pegajosa: vale até ser substituída por outro pacote.
type Intent struct {
	Moving    bool
	Direction uint8
	Timestamp uint32
}

// Actor é a entidade de um jogador: uma posição única da qual derivam as
// matrizes dos três itens (original, refletido e sombra projetada).
type Actor struct {
	Player   uint16
	Position mgl32.Vec3
	Health   int
	Intent   Intent

	Original  *RenderItem
	Reflected *RenderItem
	Shadowed  *RenderItem
}

// SyncTransforms recalcula as três matrizes de mundo a partir da posição do
// ator e marca os itens para reescrita nos três frames do anel. lightDir é a
// direção da luz principal, usada na projeção da sombra no chão.
func (a *Actor) SyncTransforms(lightDir mgl32.Vec3) {
	world := util.ComposeActorWorld(a.Position)

	a.Original.World = world
	a.Original.NumFramesDirty = NumFrameResources

	reflect := util.ReflectPlane(util.MirrorPlaneZ)
	a.Reflected.World = reflect.Mul4(world)
	a.Reflected.NumFramesDirty = NumFrameResources

	toLight := lightDir.Mul(-1)
	shadow := util.ShadowPlane(util.GroundPlaneY, toLight.Vec4(0))
	bias := mgl32.Translate3D(0, util.ShadowBias, 0)
	a.Shadowed.World = bias.Mul4(shadow).Mul4(world)
	a.Shadowed.NumFramesDirty = NumFrameResources
}

// ApplyIntent registra a intenção de movimento de um jogador. Pacotes de
// jogadores desconhecidos são ignorados em silêncio.
func (s *Scene) ApplyIntent(player uint16, moving bool, direction uint8, timestamp uint32) {
	a := s.Actors[player]
	if a == nil {
		return
	}
	a.Intent = Intent{Moving: moving, Direction: direction, Timestamp: timestamp}
}

// TranslateActor desloca um ator no plano XY do mundo, sem deixá-lo
// atravessar o chão. A matriz dos itens só é recalculada na integração.
func (s *Scene) TranslateActor(player uint16, dx, dy float32) {
	a := s.Actors[player]
	if a == nil {
		return
	}
	a.Position[0] += dx
	a.Position[1] += dy
	if a.Position[1] < 0 {
		a.Position[1] = 0
	}
}

// IntegrateMovement aplica as intenções remotas pendentes e ressincroniza as
// matrizes de todos os atores. O ator local é movido pelo codificador de
// entrada, nunca pela própria intenção ecoada; os demais andam enquanto a
// última intenção deles disser que estão andando.
func (s *Scene) IntegrateMovement(dt float32, localPlayer uint16) {
	for id, a := range s.Actors {
		if id != localPlayer && a.Intent.Moving {
			dx, dy := mvnet.AxisDelta(a.Intent.Direction)
			a.Position[0] += dx * MoveSpeed * dt
			a.Position[1] += dy * MoveSpeed * dt
			if a.Position[1] < 0 {
				a.Position[1] = 0
			}
		}
		// Sempre ressincroniza, mesmo parado: absorve posições vindas do
		// roster e mantém reflexo e sombra presos ao original.
		a.SyncTransforms(s.MainLightDirection())
	}
}

// UpdatePlayers aplica uma posição absoluta vinda do roster do servidor.
// Jogador desconhecido é ignorado em silêncio.
func (s *Scene) UpdatePlayers(player uint16, x, y, z float32, health int) {
	a := s.Actors[player]
	if a == nil {
		return
	}
	a.Position = mgl32.Vec3{x, y, z}
	if a.Position[1] < 0 {
		a.Position[1] = 0
	}
	a.Health = health
	a.SyncTransforms(s.MainLightDirection())
}
