package mvnet

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestTelemetryRoundTrip(t *testing.T) {
	frame := TelemetryFrame{
		Stats: &RelayStats{
			PacketsIn:  120,
			PacketsOut: 240,
			BytesIn:    4096,
			BytesOut:   8192,
			Clients:    2,
			UptimeMs:   90000,
		},
		Roster: []RosterEntry{
			{Player: 1, Name: "bob", Health: 100, X: 0, Y: 1, Z: -10, Addr: "192.168.1.10:6000"},
			{Player: 2, Name: "ana", Health: -5, X: 5, Y: 1, Z: -10, Addr: "192.168.1.11:6001"},
		},
	}

	var got TelemetryFrame
	if err := got.Unmarshal(frame.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Stats == nil {
		t.Fatal("Stats ausente após round trip")
	}
	if *got.Stats != *frame.Stats {
		t.Errorf("Stats = %+v, want %+v", *got.Stats, *frame.Stats)
	}
	if len(got.Roster) != len(frame.Roster) {
		t.Fatalf("Roster com %d entradas, want %d", len(got.Roster), len(frame.Roster))
	}
	for i := range frame.Roster {
		if got.Roster[i] != frame.Roster[i] {
			t.Errorf("Roster[%d] = %+v, want %+v", i, got.Roster[i], frame.Roster[i])
		}
	}
}

func TestTelemetryCamposDesconhecidos(t *testing.T) {
	frame := TelemetryFrame{Stats: &RelayStats{Clients: 1}}

	data := frame.Marshal()
	data = protowire.AppendTag(data, 9, protowire.VarintType)
	data = protowire.AppendVarint(data, 77)
	data = protowire.AppendTag(data, 10, protowire.BytesType)
	data = protowire.AppendString(data, "futuro")

	var got TelemetryFrame
	if err := got.Unmarshal(data); err != nil {
		t.Fatalf("Unmarshal com campos extras: %v", err)
	}
	if got.Stats == nil || got.Stats.Clients != 1 {
		t.Errorf("Stats = %+v, want Clients=1", got.Stats)
	}
}

func TestTelemetryTruncado(t *testing.T) {
	frame := TelemetryFrame{
		Roster: []RosterEntry{{Player: 1, Name: "bob", Addr: "a:1"}},
	}

	data := frame.Marshal()
	var got TelemetryFrame
	if err := got.Unmarshal(data[:len(data)-3]); err == nil {
		t.Error("Unmarshal de frame truncado não falhou")
	}
}
