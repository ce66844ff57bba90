package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"MirrorVision/shared/proto/mvnet"
	"MirrorVision/shared/util"
)

// Peer é um jogador registrado no relay: endereço de origem, última intenção
// de movimento e a posição integrada do lado do servidor.
type Peer struct {
	Player   uint16
	Name     string
	Addr     *net.UDPAddr
	Health   int
	Position mgl32.Vec3

	moving    bool
	direction uint8
}

// Relay encaminha pacotes de movimento entre os pares, integra as intenções
// no próprio tick e difunde o roster no período configurado.
type Relay struct {
	conn  *net.UDPConn
	start time.Time

	rosterPeriod time.Duration

	mu    sync.Mutex
	peers map[uint16]*Peer

	// Anúncios de entrada pendentes, únicos por jogador: reenvios do pacote
	// de join não duplicam o anúncio.
	joins *util.UniqueQueue[uint16, string]

	running atomic.Bool

	packetsIn  atomic.Uint64
	packetsOut atomic.Uint64
	bytesIn    atomic.Uint64
	bytesOut   atomic.Uint64
}

// NewRelay abre o socket UDP de escuta do relay.
func NewRelay(listenAddr string, rosterPeriod time.Duration) (*Relay, error) {
	addr, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("falha ao resolver %s: %w", listenAddr, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("falha ao escutar em %s: %w", listenAddr, err)
	}

	r := &Relay{
		conn:         conn,
		start:        time.Now(),
		rosterPeriod: rosterPeriod,
		peers:        make(map[uint16]*Peer),
		joins:        util.NewUniqueQueue[uint16, string](),
	}
	r.running.Store(true)

	log.Printf("[Relay] Escutando UDP em %s (roster a cada %s)", conn.LocalAddr(), rosterPeriod)
	return r, nil
}

// LocalAddr devolve o endereço do socket de escuta.
func (r *Relay) LocalAddr() net.Addr {
	return r.conn.LocalAddr()
}

// Run consome datagramas até o socket fechar. O tick de integração e
// broadcast roda em goroutine própria; o socket fica só com esta.
func (r *Relay) Run() {
	go r.tickLoop()

	buf := make([]byte, 2048)
	for r.running.Load() {
		n, src, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if !r.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("[Relay] Erro de leitura: %v", err)
			time.Sleep(50 * time.Millisecond)
			continue
		}
		r.packetsIn.Add(1)
		r.bytesIn.Add(uint64(n))
		r.handleDatagram(buf[:n], src)
	}
}

// Close para o relay e fecha o socket.
func (r *Relay) Close() error {
	r.running.Store(false)
	return r.conn.Close()
}

func (r *Relay) handleDatagram(data []byte, src *net.UDPAddr) {
	p, err := mvnet.Decode(data)
	if err != nil {
		log.Printf("[Relay] Datagrama malformado de %s: %v", src, err)
		return
	}

	switch p.PacketType {
	case mvnet.PacketJoin:
		r.registerPeer(p, src)
	case mvnet.PacketMovement:
		r.applyMovement(p, src)
		r.forward(data, p.PlayerID)
	default:
		log.Printf("[Relay] Tipo de pacote desconhecido %d de %s", p.PacketType, src)
	}
}

// registerPeer registra ou atualiza um jogador. Join repetido só refresca
// nome e endereço.
func (r *Relay) registerPeer(p mvnet.Packet, src *net.UDPAddr) {
	r.mu.Lock()
	peer, ok := r.peers[p.PlayerID]
	if !ok {
		peer = &Peer{
			Player:   p.PlayerID,
			Health:   100,
			Position: util.DefaultSpawn(p.PlayerID),
		}
		r.peers[p.PlayerID] = peer
	}
	peer.Name = p.Name
	peer.Addr = src
	r.mu.Unlock()

	r.joins.Enqueue(p.PlayerID, p.Name)
}

// applyMovement troca a intenção pegajosa do remetente. Movimento antes do
// join registra o jogador com os padrões para não perdê-lo.
func (r *Relay) applyMovement(p mvnet.Packet, src *net.UDPAddr) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[p.PlayerID]
	if !ok {
		peer = &Peer{
			Player:   p.PlayerID,
			Health:   100,
			Position: util.DefaultSpawn(p.PlayerID),
		}
		r.peers[p.PlayerID] = peer
	}
	peer.Addr = src
	peer.moving = p.MovementState == mvnet.StateMoving
	peer.direction = p.Direction
}

// forward reenvia o datagrama cru para todos os outros pares registrados.
func (r *Relay) forward(data []byte, from uint16) {
	r.mu.Lock()
	targets := make([]*net.UDPAddr, 0, len(r.peers))
	for id, peer := range r.peers {
		if id == from || peer.Addr == nil {
			continue
		}
		targets = append(targets, peer.Addr)
	}
	r.mu.Unlock()

	for _, addr := range targets {
		n, err := r.conn.WriteToUDP(data, addr)
		if err != nil {
			log.Printf("[Relay] Erro ao encaminhar para %s: %v", addr, err)
			continue
		}
		r.packetsOut.Add(1)
		r.bytesOut.Add(uint64(n))
	}
}

// tickLoop anuncia entradas, integra as intenções e difunde o roster a cada
// período.
func (r *Relay) tickLoop() {
	ticker := time.NewTicker(r.rosterPeriod)
	defer ticker.Stop()

	last := time.Now()
	for r.running.Load() {
		now := <-ticker.C
		dt := float32(now.Sub(last).Seconds())
		last = now

		for {
			id, name, ok := r.joins.Dequeue()
			if !ok {
				break
			}
			log.Printf("[Relay] Jogador %d (%s) entrou na sala", id, name)
		}

		r.integrate(dt)
		r.broadcastRoster()
	}
}

// integrate avança os pares cuja última intenção é andar, na mesma taxa do
// cliente: o roster persegue a simulação local em vez de brigar com ela.
func (r *Relay) integrate(dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, peer := range r.peers {
		if !peer.moving {
			continue
		}
		dx, dy := mvnet.AxisDelta(peer.direction)
		peer.Position[0] += dx * mvnet.MoveUnitsPerSecond * dt
		peer.Position[1] += dy * mvnet.MoveUnitsPerSecond * dt
		if peer.Position[1] < 0 {
			peer.Position[1] = 0
		}
	}
}

// broadcastRoster monta a linha de roster e envia para todos os pares.
func (r *Relay) broadcastRoster() {
	r.mu.Lock()
	records := make([]mvnet.RosterRecord, 0, len(r.peers))
	targets := make([]*net.UDPAddr, 0, len(r.peers))
	for _, peer := range r.peers {
		if peer.Addr == nil {
			continue
		}
		records = append(records, mvnet.RosterRecord{
			Addr:   peer.Addr.String(),
			Player: peer.Player,
			Name:   peer.Name,
			Health: peer.Health,
			X:      peer.Position.X(),
			Y:      peer.Position.Y(),
			Z:      peer.Position.Z(),
		})
		targets = append(targets, peer.Addr)
	}
	r.mu.Unlock()

	if len(records) == 0 {
		return
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Player < records[j].Player })

	data := mvnet.EncodeRoster(records)
	for _, addr := range targets {
		n, err := r.conn.WriteToUDP(data, addr)
		if err != nil {
			log.Printf("[Relay] Erro ao difundir roster para %s: %v", addr, err)
			continue
		}
		r.packetsOut.Add(1)
		r.bytesOut.Add(uint64(n))
	}
}

// Snapshot monta o quadro de telemetria corrente do relay.
func (r *Relay) Snapshot() *mvnet.TelemetryFrame {
	r.mu.Lock()
	roster := make([]mvnet.RosterEntry, 0, len(r.peers))
	for _, peer := range r.peers {
		addr := ""
		if peer.Addr != nil {
			addr = peer.Addr.String()
		}
		roster = append(roster, mvnet.RosterEntry{
			Player: peer.Player,
			Name:   peer.Name,
			Health: int32(peer.Health),
			X:      peer.Position.X(),
			Y:      peer.Position.Y(),
			Z:      peer.Position.Z(),
			Addr:   addr,
		})
	}
	clients := uint64(len(r.peers))
	r.mu.Unlock()

	sort.Slice(roster, func(i, j int) bool { return roster[i].Player < roster[j].Player })

	return &mvnet.TelemetryFrame{
		Stats: &mvnet.RelayStats{
			PacketsIn:  r.packetsIn.Load(),
			PacketsOut: r.packetsOut.Load(),
			BytesIn:    r.bytesIn.Load(),
			BytesOut:   r.bytesOut.Load(),
			Clients:    clients,
			UptimeMs:   uint64(time.Since(r.start).Milliseconds()),
		},
		Roster: roster,
	}
}
