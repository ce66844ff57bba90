package client

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"

	"MirrorVision/shared/proto/mvnet"
)

// UDPClient troca datagramas com o servidor de relay: envia os pacotes de
// movimento do jogador local e recebe os pacotes dos outros jogadores e as
// listas de presença. A goroutine de leitura nunca toca o estado do jogo:
// ela só classifica e entrega ao laço principal pela fila e pelos canais.
type UDPClient struct {
	conn *net.UDPConn
	peer *net.UDPAddr

	running atomic.Bool

	// queue ordena os pacotes de movimento por timestamp; o laço principal
	// drena os prontos a cada tick.
	queue *mvnet.PacketQueue

	// wake acorda o laço principal quando chega pacote novo. Capacidade 1:
	// um sinal pendente basta, o resto coalesce.
	wake chan struct{}

	// roster entrega as listas de presença. Quando o laço está atrasado, a
	// lista antiga é descartada, só a mais recente importa.
	roster chan []mvnet.RosterRecord
}

// Dial abre o socket local e começa a receber. localPort 0 usa uma porta
// efêmera.
func Dial(localPort int, peerAddr string) (*UDPClient, error) {
	peer, err := net.ResolveUDPAddr("udp", peerAddr)
	if err != nil {
		return nil, fmt.Errorf("endereço do servidor inválido %q: %w", peerAddr, err)
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: localPort})
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir socket UDP local: %w", err)
	}

	c := &UDPClient{
		conn:   conn,
		peer:   peer,
		queue:  mvnet.NewPacketQueue(),
		wake:   make(chan struct{}, 1),
		roster: make(chan []mvnet.RosterRecord, 4),
	}
	c.running.Store(true)
	go c.readLoop()

	log.Printf("[Rede] Cliente UDP em %s, servidor %s", conn.LocalAddr(), peer)
	return c, nil
}

// Send envia um pacote de movimento ao servidor.
func (c *UDPClient) Send(p mvnet.Packet) error {
	if !c.running.Load() {
		return net.ErrClosed
	}
	if _, err := c.conn.WriteToUDP(p.Encode(), c.peer); err != nil {
		return fmt.Errorf("falha ao enviar pacote: %w", err)
	}
	return nil
}

// Queue é a fila de pacotes de movimento ordenada por timestamp.
func (c *UDPClient) Queue() *mvnet.PacketQueue {
	return c.queue
}

// Wake sinaliza a chegada de pacotes novos desde o último drain.
func (c *UDPClient) Wake() <-chan struct{} {
	return c.wake
}

// Roster entrega as listas de presença recebidas do servidor.
func (c *UDPClient) Roster() <-chan []mvnet.RosterRecord {
	return c.roster
}

// LocalAddr é o endereço local do socket.
func (c *UDPClient) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Close derruba a flag de execução e fecha o socket, destravando a
// goroutine de leitura.
func (c *UDPClient) Close() error {
	c.running.Store(false)
	return c.conn.Close()
}

// readLoop recebe datagramas até o socket fechar. O primeiro byte decide o
// destino: dígito é pacote de movimento, '%' é lista de presença; qualquer
// outra coisa é descartada com log.
func (c *UDPClient) readLoop() {
	defer log.Printf("[Rede] Goroutine de leitura encerrada")

	buf := make([]byte, 2048)
	for c.running.Load() {
		n, _, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			if !c.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("[Rede] Erro de leitura: %v", err)
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if n == 0 {
			continue
		}

		switch b := buf[0]; {
		case b >= '0' && b <= '9':
			p, err := mvnet.Decode(buf[:n])
			if err != nil {
				log.Printf("[Rede] Pacote malformado de %d bytes: %v", n, err)
				continue
			}
			c.queue.Push(p)
			select {
			case c.wake <- struct{}{}:
			default:
			}
		case b == '%':
			records := mvnet.ParseRoster(string(buf[:n]))
			if len(records) == 0 {
				continue
			}
			select {
			case c.roster <- records:
			default:
				// Laço principal atrasado; o servidor reenvia o roster
				// em instantes, esta lista pode ser descartada.
			}
		default:
			log.Printf("[Rede] Datagrama desconhecido começando com %q", b)
		}
	}
}
