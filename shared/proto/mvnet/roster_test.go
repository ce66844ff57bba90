package mvnet

import "testing"

func TestRosterRoundTrip(t *testing.T) {
	records := []RosterRecord{
		{"192.168.1.10:6000", 1, "bob", 100, 0, 1, -10},
		{"192.168.1.11:6001", 2, "ana", 75, 5.5, 1, -10.25},
	}

	got := ParseRoster(string(EncodeRoster(records)))
	if len(got) != len(records) {
		t.Fatalf("ParseRoster devolveu %d registros, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("registro %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestEncodeRosterFormato(t *testing.T) {
	records := []RosterRecord{{"10.0.0.2:8000", 3, "rui", 50, 1.5, 0, -2}}

	got := string(EncodeRoster(records))
	want := "%ip:10.0.0.2:8000;player:3;name:rui;health:50;x:1.500;y:0.000;z:-2.000\n"
	if got != want {
		t.Errorf("EncodeRoster = %q, want %q", got, want)
	}
}

func TestParseRosterIgnoraLixo(t *testing.T) {
	text := "%ip:1.2.3.4:8000;player:1;name:a;health:9;x:0.000;y:0.000;z:0.000" +
		"%player:2;name:b" +
		"%ip:5.6.7.8:8000;player:x;name:c;health:9;x:0.000;y:0.000;z:0.000" +
		"%ip:9.9.9.9:8000;player:4;name:d;health:9;x:1.000;y:2.000;z:3.000\n"

	got := ParseRoster(text)
	if len(got) != 2 {
		t.Fatalf("ParseRoster devolveu %d registros, want 2", len(got))
	}
	if got[0].Player != 1 || got[1].Player != 4 {
		t.Errorf("jogadores = %d e %d, want 1 e 4", got[0].Player, got[1].Player)
	}
}

func TestParseRosterVazio(t *testing.T) {
	if got := ParseRoster("\n"); len(got) != 0 {
		t.Errorf("ParseRoster de texto vazio devolveu %d registros", len(got))
	}
}
