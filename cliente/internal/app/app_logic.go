package app

import "time"

// nowMs devolve o relógio de parede em milissegundos, truncado para o campo
// de timestamp do protocolo. Os dois lados truncam do mesmo jeito, então a
// comparação "venceu ou não" sobrevive ao wrap de ~49 dias.
func nowMs() uint32 {
	return uint32(time.Now().UnixMilli())
}

// tick executa a lógica de um frame na ordem fixa do pipeline: reserva o
// frame resource do anel, drena a rede, integra o movimento e reescreve os
// buffers de constantes que a gravação vai apontar.
func (a *App) tick(dt float32) {
	// 1. Avança o anel; se a GPU ainda não terminou o que foi gravado neste
	// slot há três frames, espera o fence dele.
	fr := a.scene.AdvanceFrame()
	if fr.Fence != 0 && a.device.CompletedFence() < fr.Fence {
		a.device.WaitFence(fr.Fence)
	}

	// 2. Rede e simulação.
	a.drainNetwork(nowMs())
	a.scene.IntegrateMovement(dt, a.Config.PlayerID)

	// 3. Constantes do frame corrente.
	a.scene.UpdateObjectCBs()
	a.scene.UpdateMaterialCBs()
	a.scene.UpdateMainPassCB(a.Cam.View(), a.Cam.Proj(), a.Cam.Position,
		a.device.Width(), a.device.Height(), a.totalTime, dt)
	a.scene.UpdateReflectedPassCB()
}
