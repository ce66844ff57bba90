package mvnet

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// TelemetryFrame é a mensagem binária publicada pelo hub de telemetria a
// cada segundo: estatísticas do relay e o roster corrente.
type TelemetryFrame struct {
	Stats  *RelayStats
	Roster []RosterEntry
}

// RelayStats acumula contadores do relay desde o boot.
type RelayStats struct {
	PacketsIn  uint64
	PacketsOut uint64
	BytesIn    uint64
	BytesOut   uint64
	Clients    uint64
	UptimeMs   uint64
}

// RosterEntry é um jogador do roster na telemetria.
type RosterEntry struct {
	Player uint16
	Name   string
	Health int32
	X      float32
	Y      float32
	Z      float32
	Addr   string
}

func (m *TelemetryFrame) Marshal() []byte {
	var b []byte
	if m.Stats != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Stats.Marshal())
	}
	for i := range m.Roster {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Roster[i].Marshal())
	}
	return b
}

func (m *TelemetryFrame) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch num {
		case 1:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			m.Stats = &RelayStats{}
			if err := m.Stats.Unmarshal(sub); err != nil {
				return err
			}
		case 2:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			var e RosterEntry
			if err := e.Unmarshal(sub); err != nil {
				return err
			}
			m.Roster = append(m.Roster, e)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return nil
}

func (s *RelayStats) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, s.PacketsIn)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, s.PacketsOut)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, s.BytesIn)
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, s.BytesOut)
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, s.Clients)
	b = protowire.AppendTag(b, 6, protowire.VarintType)
	b = protowire.AppendVarint(b, s.UptimeMs)
	return b
}

func (s *RelayStats) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch num {
		case 1:
			s.PacketsIn = v
		case 2:
			s.PacketsOut = v
		case 3:
			s.BytesIn = v
		case 4:
			s.BytesOut = v
		case 5:
			s.Clients = v
		case 6:
			s.UptimeMs = v
		}
	}
	return nil
}

func (e *RosterEntry) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Player))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, e.Name)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(uint32(e.Health)))
	b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(e.X))
	b = protowire.AppendTag(b, 5, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(e.Y))
	b = protowire.AppendTag(b, 6, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(e.Z))
	b = protowire.AppendTag(b, 7, protowire.BytesType)
	b = protowire.AppendString(b, e.Addr)
	return b
}

func (e *RosterEntry) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Player = uint16(v)
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Name = v
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Health = int32(v)
		case num == 4 && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.X = math.Float32frombits(v)
		case num == 5 && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Y = math.Float32frombits(v)
		case num == 6 && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Z = math.Float32frombits(v)
		case num == 7 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			e.Addr = v
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return nil
}
