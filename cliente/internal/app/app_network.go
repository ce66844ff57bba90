package app

import (
	"log"

	"MirrorVision/cliente/internal/client"
	"MirrorVision/shared/proto/mvnet"
)

// connectServer abre o socket UDP e anuncia o jogador local ao relay. Sem
// relay a aplicação continua: a cena roda offline e os envios viram no-ops.
func (a *App) connectServer() {
	conn, err := client.Dial(a.Config.LocalPort, a.Config.ServerAddr)
	if err != nil {
		log.Printf("[Rede] Erro ao conectar ao relay %s: %v", a.Config.ServerAddr, err)
		return
	}
	a.net = conn

	join := mvnet.Packet{
		PacketType: mvnet.PacketJoin,
		PlayerID:   a.Config.PlayerID,
		Direction:  mvnet.DirStationary,
		Timestamp:  nowMs(),
		Name:       a.Config.PlayerName,
	}
	if err := a.net.Send(join); err != nil {
		log.Printf("[Rede] Erro ao enviar join: %v", err)
		return
	}
	a.packetsOut++
	log.Printf("[Rede] Entrou na sala como jogador %d (%s)", a.Config.PlayerID, a.Config.PlayerName)
}

// sendPacket envia um pacote ao relay, se a conexão existir.
func (a *App) sendPacket(p mvnet.Packet) {
	if a.net == nil {
		return
	}
	if err := a.net.Send(p); err != nil {
		log.Printf("[Rede] Erro ao enviar pacote: %v", err)
		return
	}
	a.packetsOut++
}

// drainNetwork aplica tudo o que a goroutine receptora acumulou: primeiro as
// posições absolutas do roster, depois os pacotes de movimento vencidos, em
// ordem de timestamp.
func (a *App) drainNetwork(now uint32) {
	if a.net == nil {
		return
	}

roster:
	for {
		select {
		case records := <-a.net.Roster():
			a.applyRoster(records)
		default:
			break roster
		}
	}

	// Consome o aviso coalescido da receptora; os pacotes em si saem da fila.
	select {
	case <-a.net.Wake():
	default:
	}

	for {
		p, ok := a.net.Queue().PopReady(now)
		if !ok {
			break
		}
		a.packetsIn++
		if p.PacketType != mvnet.PacketMovement {
			continue
		}
		a.scene.ApplyIntent(p.PlayerID, p.MovementState == mvnet.StateMoving, p.Direction, p.Timestamp)
	}
}

// applyRoster aplica os registros difundidos pelo relay, pulando o próprio
// jogador: a posição local é autoridade do teclado, não do servidor.
func (a *App) applyRoster(records []mvnet.RosterRecord) {
	for _, r := range records {
		if r.Player == a.Config.PlayerID {
			continue
		}
		a.scene.UpdatePlayers(r.Player, r.X, r.Y, r.Z, r.Health)
	}
}
