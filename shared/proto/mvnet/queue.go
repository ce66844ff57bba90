package mvnet

import (
	"container/heap"
	"sync"
)

// PacketQueue ordena pacotes recebidos por timestamp crescente,
// independentemente da ordem de chegada. A goroutine receptora insere e o
// loop principal drena a cada tick; todo acesso é serializado pelo mutex.
type PacketQueue struct {
	mu    sync.Mutex
	items packetHeap
}

// NewPacketQueue cria uma fila vazia.
func NewPacketQueue() *PacketQueue {
	q := &PacketQueue{}
	heap.Init(&q.items)
	return q
}

// Push insere um pacote na fila.
func (q *PacketQueue) Push(p Packet) {
	q.mu.Lock()
	heap.Push(&q.items, p)
	q.mu.Unlock()
}

// Pop remove o pacote de menor timestamp. Retorna false se a fila está vazia.
func (q *PacketQueue) Pop() (Packet, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Packet{}, false
	}
	return heap.Pop(&q.items).(Packet), true
}

// PopReady remove o pacote de menor timestamp se ele já venceu (timestamp ≤
// now). Permite ao loop principal drenar apenas até o relógio corrente.
func (q *PacketQueue) PopReady(now uint32) (Packet, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 || q.items[0].Timestamp > now {
		return Packet{}, false
	}
	return heap.Pop(&q.items).(Packet), true
}

// Len retorna o número de pacotes aguardando.
func (q *PacketQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// packetHeap implementa heap.Interface com o menor timestamp no topo.
type packetHeap []Packet

func (h packetHeap) Len() int           { return len(h) }
func (h packetHeap) Less(i, j int) bool { return h[i].Timestamp < h[j].Timestamp }
func (h packetHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *packetHeap) Push(x any)        { *h = append(*h, x.(Packet)) }

func (h *packetHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
