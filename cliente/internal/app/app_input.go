package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"MirrorVision/cliente/internal/render"
	"MirrorVision/shared/proto/mvnet"
)

// InputEncoder transforma o estado das teclas A/D/W/S em pacotes de
// movimento. Só emite nas transições: começou a andar, mudou de direção ou
// parou. Todo o estado anterior vive aqui, nada em globais.
type InputEncoder struct {
	playerID      uint16
	wasMoving     bool
	prevDirection uint8
}

// NewInputEncoder cria um codificador para o jogador local.
func NewInputEncoder(playerID uint16) *InputEncoder {
	return &InputEncoder{playerID: playerID}
}

// Encode classifica as teclas em uma direção e devolve o pacote a emitir
// neste tick, se houver. Teclas opostas se anulam e contam como parada.
func (e *InputEncoder) Encode(a, d, w, s bool, nowMs uint32) (mvnet.Packet, bool) {
	dir := mvnet.DetermineDirection(a, d, w, s)
	moving := dir != mvnet.DirStationary

	justStarted := moving && !e.wasMoving
	changed := moving && e.wasMoving && dir != e.prevDirection
	justStopped := !moving && e.wasMoving

	e.wasMoving = moving
	e.prevDirection = dir

	switch {
	case justStarted || changed:
		return mvnet.Packet{
			PacketType:    mvnet.PacketMovement,
			PlayerID:      e.playerID,
			MovementState: mvnet.StateMoving,
			Direction:     dir,
			Timestamp:     nowMs,
		}, true
	case justStopped:
		return mvnet.Packet{
			PacketType:    mvnet.PacketMovement,
			PlayerID:      e.playerID,
			MovementState: mvnet.StateIdle,
			Direction:     mvnet.DirStationary,
			Timestamp:     nowMs,
		}, true
	default:
		return mvnet.Packet{}, false
	}
}

// updateCamera processa o arrasto do mouse e reconstrói a matriz de view.
func (a *App) updateCamera() {
	a.Cam.HandleInput()
	a.Cam.UpdateViewMatrix()
}

// updateInput trata as teclas de interface.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.State == StatePaused {
			a.State = StateViewing
		} else {
			a.State = StatePaused
		}
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		a.Config.Fullscreen = !a.Config.Fullscreen
	}
}

// sampleMovement amostra as teclas de movimento, emite o pacote de transição
// quando cabe e desloca o ator local pelos eixos pressionados.
func (a *App) sampleMovement(dt float32) {
	keyA := rl.IsKeyDown(rl.KeyA)
	keyD := rl.IsKeyDown(rl.KeyD)
	keyW := rl.IsKeyDown(rl.KeyW)
	keyS := rl.IsKeyDown(rl.KeyS)

	if pkt, ok := a.encoder.Encode(keyA, keyD, keyW, keyS, nowMs()); ok {
		a.sendPacket(pkt)
	}

	// O ator local anda aqui, tecla a tecla; o eco do próprio pacote nunca
	// o move de novo.
	dir := mvnet.DetermineDirection(keyA, keyD, keyW, keyS)
	if dx, dy := mvnet.AxisDelta(dir); dx != 0 || dy != 0 {
		a.scene.TranslateActor(a.Config.PlayerID, dx*render.MoveSpeed*dt, dy*render.MoveSpeed*dt)
	}
}
