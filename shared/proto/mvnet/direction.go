package mvnet

// MoveUnitsPerSecond é a velocidade de deslocamento por eixo que os dois
// lados aplicam a uma intenção de movimento. Cliente e relay precisam
// integrar na mesma taxa para o roster não brigar com a simulação local.
const MoveUnitsPerSecond float32 = 1.0

// Códigos de direção do protocolo. O código 7 desloca -x,-y e o 8 desloca
// +x,-y; a tabela abaixo é a canônica do formato no ar.
const (
	DirStationary uint8 = 0 // parado
	DirUp         uint8 = 1 // +y
	DirDown       uint8 = 2 // -y
	DirRight      uint8 = 3 // +x
	DirLeft       uint8 = 4 // -x
	DirUpRight    uint8 = 5 // +x, +y
	DirUpLeft     uint8 = 6 // -x, +y
	DirDownLeft   uint8 = 7 // -x, -y
	DirDownRight  uint8 = 8 // +x, -y
)

// DetermineDirection classifica o estado das teclas A/D/W/S em um código de
// direção. A precedência segue o protocolo: teclas isoladas primeiro, depois
// as diagonais com W antes de S.
func DetermineDirection(a, d, w, s bool) uint8 {
	switch {
	case w && !a && !d && !s:
		return DirUp
	case s && !a && !d && !w:
		return DirDown
	case d && !w && !s && !a:
		return DirRight
	case a && !w && !s && !d:
		return DirLeft
	case w && d:
		return DirUpRight
	case w && a:
		return DirUpLeft
	case s && a:
		return DirDownLeft
	case s && d:
		return DirDownRight
	default:
		return DirStationary
	}
}

// AxisDelta devolve os deslocamentos unitários (dx, dy) de um código de
// direção. Códigos desconhecidos não deslocam.
func AxisDelta(dir uint8) (dx, dy float32) {
	switch dir {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirUpRight:
		return 1, 1
	case DirUpLeft:
		return -1, 1
	case DirDownLeft:
		return -1, -1
	case DirDownRight:
		return 1, -1
	default:
		return 0, 0
	}
}
