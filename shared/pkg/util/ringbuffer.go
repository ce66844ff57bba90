package util

// RingBuffer é um buffer circular de capacidade fixa que descarta o item mais
// antigo quando cheio. Guarda o histórico de tempos de frame exibido no HUD.
// Não é thread-safe: pertence ao loop principal.
type RingBuffer[T any] struct {
	entries []T
	mask    uint64
	head    uint64 // próximo slot de escrita
	size    int
}

// NewRingBuffer cria um buffer circular com a capacidade dada
// (arredondada para potência de 2).
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	actualCap := nextPowerOfTwo(capacity)
	return &RingBuffer[T]{
		entries: make([]T, actualCap),
		mask:    uint64(actualCap - 1),
	}
}

// Push adiciona um item, sobrescrevendo o mais antigo se o buffer estiver cheio.
func (r *RingBuffer[T]) Push(item T) {
	r.entries[r.head&r.mask] = item
	r.head++
	if r.size < len(r.entries) {
		r.size++
	}
}

// Len retorna quantos itens válidos o buffer contém.
func (r *RingBuffer[T]) Len() int {
	return r.size
}

// Cap retorna a capacidade real do buffer.
func (r *RingBuffer[T]) Cap() int {
	return len(r.entries)
}

// Last retorna o item mais recente. Retorna false se o buffer estiver vazio.
func (r *RingBuffer[T]) Last() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.entries[(r.head-1)&r.mask], true
}

// Snapshot copia os itens do mais antigo para o mais recente em dst e retorna
// a fatia preenchida. Se dst for pequeno demais, aloca.
func (r *RingBuffer[T]) Snapshot(dst []T) []T {
	if cap(dst) < r.size {
		dst = make([]T, r.size)
	}
	dst = dst[:r.size]
	start := r.head - uint64(r.size)
	for i := 0; i < r.size; i++ {
		dst[i] = r.entries[(start+uint64(i))&r.mask]
	}
	return dst
}

func nextPowerOfTwo(x int) int {
	res := 2
	for res < x {
		res <<= 1
	}
	return res
}
