package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/shared/util"
)

// DegPerPixel é a sensibilidade do arrasto do mouse, em graus por pixel.
const DegPerPixel = 0.25

// Controller é a câmera em primeira pessoa da cena: uma posição e a base
// ortonormal right/up/look, girada pelo arrasto do mouse. A view e a
// projeção saem na convenção mão-esquerda com clip z em [0,1].
type Controller struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	Look     mgl32.Vec3

	FovY   float32
	Aspect float32
	NearZ  float32
	FarZ   float32

	view      mgl32.Mat4
	proj      mgl32.Mat4
	viewDirty bool
}

// New cria a câmera no ponto de observação inicial da sala, olhando para +z.
func New(aspect float32) *Controller {
	c := &Controller{
		Position: mgl32.Vec3{0, 2, -15},
		Right:    mgl32.Vec3{1, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Look:     mgl32.Vec3{0, 0, 1},
	}
	c.SetLens(float32(math.Pi/4), aspect, 1, 1000)
	c.viewDirty = true
	c.UpdateViewMatrix()
	return c
}

// SetLens define a projeção perspectiva. Chamado na criação e quando a
// janela muda de tamanho.
func (c *Controller) SetLens(fovY, aspect, nearZ, farZ float32) {
	c.FovY = fovY
	c.Aspect = aspect
	c.NearZ = nearZ
	c.FarZ = farZ
	c.proj = util.PerspectiveLH(fovY, aspect, nearZ, farZ)
}

// Pitch inclina a câmera em torno do próprio eixo right.
func (c *Controller) Pitch(angle float32) {
	r := mgl32.HomogRotate3D(angle, c.Right)
	c.Up = r.Mul4x1(c.Up.Vec4(0)).Vec3()
	c.Look = r.Mul4x1(c.Look.Vec4(0)).Vec3()
	c.viewDirty = true
}

// RotateY gira a base inteira em torno do eixo Y do mundo.
func (c *Controller) RotateY(angle float32) {
	r := mgl32.HomogRotate3DY(angle)
	c.Right = r.Mul4x1(c.Right.Vec4(0)).Vec3()
	c.Up = r.Mul4x1(c.Up.Vec4(0)).Vec3()
	c.Look = r.Mul4x1(c.Look.Vec4(0)).Vec3()
	c.viewDirty = true
}

// ApplyDrag converte um deslocamento do mouse em pixels nas rotações da
// base, na sensibilidade fixa de DegPerPixel.
func (c *Controller) ApplyDrag(dxPixels, dyPixels float32) {
	c.Pitch(mgl32.DegToRad(DegPerPixel * dyPixels))
	c.RotateY(mgl32.DegToRad(DegPerPixel * dxPixels))
}

// HandleInput lê o arrasto do botão esquerdo do mouse e devolve true se a
// câmera girou neste quadro.
func (c *Controller) HandleInput() bool {
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		return false
	}
	delta := rl.GetMouseDelta()
	if delta.X == 0 && delta.Y == 0 {
		return false
	}
	c.ApplyDrag(delta.X, delta.Y)
	return true
}

// UpdateViewMatrix reortonormaliza a base e recalcula a view. Deve ser
// chamada uma vez por quadro, depois do input.
func (c *Controller) UpdateViewMatrix() {
	if !c.viewDirty {
		return
	}
	c.Look = c.Look.Normalize()
	c.Up = c.Look.Cross(c.Right).Normalize()
	c.Right = c.Up.Cross(c.Look)
	c.view = util.ViewFromBasis(c.Position, c.Right, c.Up, c.Look)
	c.viewDirty = false
}

// View devolve a matriz de view corrente.
func (c *Controller) View() mgl32.Mat4 {
	return c.view
}

// Proj devolve a matriz de projeção corrente.
func (c *Controller) Proj() mgl32.Mat4 {
	return c.proj
}
