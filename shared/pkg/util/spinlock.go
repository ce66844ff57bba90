package util

import (
	"runtime"
	"sync/atomic"
)

// SpinLock provê exclusão mútua com espera ativa. Protege a troca de índice
// do framebuffer de apresentação, uma seção crítica de poucas instruções onde
// o custo de context switch do Mutex supera o spin.
type SpinLock struct {
	state int32
}

// Lock adquire o bloqueio.
func (s *SpinLock) Lock() {
	for !atomic.CompareAndSwapInt32(&s.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock libera o bloqueio.
func (s *SpinLock) Unlock() {
	atomic.StoreInt32(&s.state, 0)
}

// TryLock tenta adquirir o bloqueio sem esperar.
func (s *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapInt32(&s.state, 0, 1)
}
