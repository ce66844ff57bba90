package app

import (
	"fmt"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"MirrorVision/cliente/internal/render"
	"MirrorVision/shared/util"
)

// draw grava o frame 3D no dispositivo de software e desenha o resultado na
// janela com o HUD por cima.
func (a *App) draw() {
	// Pausado, nada novo é submetido: a textura congela no último presente.
	if a.State == StateViewing {
		fr := a.scene.CurrentFrame()
		a.cmdList.Reset()
		a.scene.RecordFrame(a.cmdList, fr)
		a.device.Submit(a.cmdList)
		a.device.Present()

		a.currentFence++
		a.device.Signal(a.currentFence)
		fr.Fence = a.currentFence
	}

	// Sobe o último frame apresentado para a textura de exibição. O buffer
	// devolvido fica fora de circulação até a próxima aquisição.
	pixels := a.device.AcquireFrame()
	rl.UpdateTexture(a.frameTex,
		unsafe.Slice((*color.RGBA)(unsafe.Pointer(&pixels[0])), len(pixels)/4))

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	a.drawScene()
	a.drawHUD()

	if a.State == StatePaused {
		a.drawPauseMenu()
	}

	rl.EndDrawing()

	a.frameTimes.Push(rl.GetFrameTime() * 1000)
}

// drawScene estica o backbuffer por software na janela inteira.
func (a *App) drawScene() {
	src := rl.NewRectangle(0, 0, float32(a.device.Width()), float32(a.device.Height()))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(a.frameTex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	// Dica de controles sempre visível no rodapé
	rl.DrawText("WASD: Mover | Mouse: Câmera | F3: HUD | F11: Tela Cheia",
		10, int32(rl.GetScreenHeight())-26, 14, rl.Gray)

	if !a.Config.ShowDebugInfo {
		return
	}

	// Painel semi-transparente no canto superior direito
	width := int32(340)
	height := int32(250)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	// Média de frame-time das últimas amostras
	a.spark = a.frameTimes.Snapshot(a.spark[:0])
	var soma float32
	for _, ms := range a.spark {
		soma += ms
	}
	if n := len(a.spark); n > 0 {
		rl.DrawText(fmt.Sprintf("%.2f ms", soma/float32(n)), x+215, y+10, 20, rl.LightGray)
	}

	// Divisor
	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	// Jogadores
	rl.DrawText("JOGADORES", x+10, y+45, 12, rl.Gray)

	line := y + 60
	for _, id := range []uint16{render.PlayerOne, render.PlayerTwo} {
		actor := a.scene.Actors[id]
		if actor == nil {
			continue
		}
		pos := actor.Position
		if id == a.Config.PlayerID {
			rl.DrawText(fmt.Sprintf("Jogador %d (%s): (%.1f, %.1f, %.1f)",
				id, a.Config.PlayerName, pos.X(), pos.Y(), pos.Z()), x+10, line, 16, rl.White)
		} else {
			estado := "parado"
			if actor.Intent.Moving {
				estado = "andando"
			}
			rl.DrawText(fmt.Sprintf("Jogador %d: (%.1f, %.1f, %.1f) HP %d [%s]",
				id, pos.X(), pos.Y(), pos.Z(), actor.Health, estado), x+10, line, 14, rl.LightGray)
		}
		line += 20
	}

	// Divisor
	rl.DrawLine(x+10, y+100, x+width-10, y+100, rl.NewColor(100, 100, 100, 100))

	// Rede e linha do tempo da GPU
	rl.DrawText("REDE / GPU", x+10, y+110, 12, rl.Gray)

	status := "Offline"
	statusColor := rl.Red
	if a.net != nil {
		status = "Conectado"
		statusColor = rl.Green
	}
	rl.DrawText(fmt.Sprintf("Pacotes: %d rx / %d tx", a.packetsIn, a.packetsOut), x+10, y+125, 14, rl.LightGray)
	rl.DrawText(status, x+215, y+125, 14, statusColor)

	completed := a.device.CompletedFence()
	rl.DrawText(fmt.Sprintf("Fence: %d enviado / %d concluído (lag %d)",
		a.currentFence, completed, a.currentFence-completed), x+10, y+145, 14, rl.LightGray)

	// Divisor
	rl.DrawLine(x+10, y+165, x+width-10, y+165, rl.NewColor(100, 100, 100, 100))

	// Sparkline de frame-time: uma barra a cada dois pixels, mais recente à
	// direita. A linha de referência marca 16,7 ms.
	rl.DrawText("FRAME TIME", x+10, y+175, 12, rl.Gray)

	baseY := y + height - 10
	rl.DrawLine(x+10, baseY-33, x+width-10, baseY-33, rl.NewColor(100, 100, 100, 80))
	for i, ms := range a.spark {
		h := int32(util.Clamp(ms*2, 1, 45))
		barColor := rl.Green
		if ms > 33.3 {
			barColor = rl.Red
		} else if ms > 16.7 {
			barColor = rl.Yellow
		}
		bx := x + 10 + int32(i*2)
		rl.DrawLine(bx, baseY, bx, baseY-h, barColor)
	}

	// Título no canto inferior direito
	title := "MirrorVision v0.1.0"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}

// drawPauseMenu desenha o menu de escape centralizado.
func (a *App) drawPauseMenu() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	// Fundo escurecido
	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 150))

	// Painel central
	panelWidth := int32(400)
	panelHeight := int32(240)
	panelX := (screenWidth - panelWidth) / 2
	panelY := (screenHeight - panelHeight) / 2

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.NewColor(30, 30, 35, 255))
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.White)

	menuTitle := "MENU DE PAUSA"
	titleWidth := rl.MeasureText(menuTitle, 24)
	rl.DrawText(menuTitle, panelX+(panelWidth-titleWidth)/2, panelY+30, 24, rl.Gold)

	buttonX := panelX + 50
	buttonWidth := panelWidth - 100
	buttonHeight := int32(40)

	if a.drawButton(buttonX, panelY+90, buttonWidth, buttonHeight, "RETOMAR (ESC)", rl.Green) {
		a.State = StateViewing
	}

	if a.drawButton(buttonX, panelY+160, buttonWidth, buttonHeight, "SAIR DO JOGO", rl.Red) {
		a.quit = true
	}
}

// drawButton desenha um botão genérico com hover e retorna true se clicado.
func (a *App) drawButton(x, y, w, h int32, text string, cor rl.Color) bool {
	mousePos := rl.GetMousePosition()
	isHover := mousePos.X >= float32(x) && mousePos.X <= float32(x+w) &&
		mousePos.Y >= float32(y) && mousePos.Y <= float32(y+h)

	drawColor := cor
	if isHover {
		drawColor.R += 30
		drawColor.G += 30
		drawColor.B += 30
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}

	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, drawColor)

	textWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, x+(w-textWidth)/2, y+(h-18)/2, 18, rl.White)

	return isHover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}
