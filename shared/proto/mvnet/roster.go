package mvnet

import (
	"fmt"
	"strconv"
	"strings"
)

// RosterRecord é a visão do relay sobre um jogador conectado, difundida em
// texto para todos os pares.
type RosterRecord struct {
	Addr   string
	Player uint16
	Name   string
	Health int
	X      float32
	Y      float32
	Z      float32
}

// EncodeRoster monta a linha de roster no formato legado:
// %ip:<addr>;player:<id>;name:<nome>;health:<n>;x:<f>;y:<f>;z:<f>
// com os registros concatenados na mesma linha.
func EncodeRoster(records []RosterRecord) []byte {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%%ip:%s;player:%d;name:%s;health:%d;x:%.3f;y:%.3f;z:%.3f",
			r.Addr, r.Player, r.Name, r.Health, r.X, r.Y, r.Z)
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// ParseRoster extrai os registros de um texto de roster. Linhas e registros
// que não seguem o formato são pulados; nunca retorna erro porque o roster é
// best-effort.
func ParseRoster(text string) []RosterRecord {
	var records []RosterRecord

	for _, line := range strings.Split(text, "\n") {
		for _, chunk := range strings.Split(line, "%") {
			if chunk == "" {
				continue
			}
			rec, ok := parseRosterChunk(chunk)
			if ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

func parseRosterChunk(chunk string) (RosterRecord, bool) {
	var rec RosterRecord

	fields := strings.Split(chunk, ";")
	if len(fields) < 7 {
		return rec, false
	}

	for _, f := range fields {
		key, value, found := strings.Cut(f, ":")
		if !found {
			return rec, false
		}
		switch key {
		case "ip":
			rec.Addr = value
		case "player":
			n, err := strconv.Atoi(value)
			if err != nil {
				return rec, false
			}
			rec.Player = uint16(n)
		case "name":
			rec.Name = value
		case "health":
			n, err := strconv.Atoi(value)
			if err != nil {
				return rec, false
			}
			rec.Health = n
		case "x":
			v, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return rec, false
			}
			rec.X = float32(v)
		case "y":
			v, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return rec, false
			}
			rec.Y = float32(v)
		case "z":
			v, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return rec, false
			}
			rec.Z = float32(v)
		}
	}
	return rec, true
}
