// Package mvnet define o protocolo de movimento trocado entre os pares,
// o texto de roster difundido pelo relay e as mensagens de telemetria.
package mvnet

import (
	"errors"
	"fmt"
	"strconv"
)

// Tipos de pacote.
const (
	PacketMovement uint8 = 0
	PacketJoin     uint8 = 1
)

// Estados de movimento.
const (
	StateIdle   uint8 = 0
	StateMoving uint8 = 1
)

// ErrPacoteMalformado indica um datagrama fora do formato legado.
var ErrPacoteMalformado = errors.New("mvnet: pacote malformado")

// Packet é um pacote de movimento no formato legado ASCII:
// <tipo:1><jogador:1><estado:1><direção:1><timestamp:dígitos><nome:resto>.
// Os quatro primeiros campos ocupam exatamente um dígito cada; ids acima
// de 9 exigiriam um formato com framing e ficam fora do protocolo.
type Packet struct {
	PacketType    uint8
	PlayerID      uint16
	MovementState uint8
	Direction     uint8
	Timestamp     uint32
	Name          string
}

// Encode serializa o pacote como dígitos decimais concatenados, com o nome
// nos bytes finais.
func (p Packet) Encode() []byte {
	buf := make([]byte, 0, 16+len(p.Name))
	buf = strconv.AppendUint(buf, uint64(p.PacketType), 10)
	buf = strconv.AppendUint(buf, uint64(p.PlayerID), 10)
	buf = strconv.AppendUint(buf, uint64(p.MovementState), 10)
	buf = strconv.AppendUint(buf, uint64(p.Direction), 10)
	buf = strconv.AppendUint(buf, uint64(p.Timestamp), 10)
	buf = append(buf, p.Name...)
	return buf
}

// Decode interpreta um datagrama no formato legado: um dígito por campo
// inicial, dígitos consecutivos como timestamp e o resto como nome.
func Decode(data []byte) (Packet, error) {
	var p Packet

	if len(data) < 4 {
		return p, fmt.Errorf("%w: apenas %d bytes", ErrPacoteMalformado, len(data))
	}
	for i := 0; i < 4; i++ {
		if data[i] < '0' || data[i] > '9' {
			return p, fmt.Errorf("%w: campo %d não é dígito", ErrPacoteMalformado, i)
		}
	}

	p.PacketType = data[0] - '0'
	p.PlayerID = uint16(data[1] - '0')
	p.MovementState = data[2] - '0'
	p.Direction = data[3] - '0'

	pos := 4
	for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
		pos++
	}
	if pos == 4 {
		return p, fmt.Errorf("%w: timestamp ausente", ErrPacoteMalformado)
	}

	ts, err := strconv.ParseUint(string(data[4:pos]), 10, 32)
	if err != nil {
		return p, fmt.Errorf("%w: timestamp: %v", ErrPacoteMalformado, err)
	}
	p.Timestamp = uint32(ts)
	p.Name = string(data[pos:])

	return p, nil
}
