package mvnet

import (
	"errors"
	"testing"
)

func TestPacketEncode(t *testing.T) {
	tests := []struct {
		p    Packet
		want string
	}{
		{Packet{PacketMovement, 2, StateMoving, DirUpRight, 12345, "bob"}, "021512345bob"},
		{Packet{PacketJoin, 3, StateIdle, DirStationary, 1, "ana"}, "13001ana"},
		{Packet{PacketMovement, 1, StateIdle, DirStationary, 990, ""}, "0100990"},
	}

	for _, tt := range tests {
		got := string(tt.p.Encode())
		if got != tt.want {
			t.Errorf("Encode(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPacketDecode(t *testing.T) {
	tests := []struct {
		data string
		want Packet
	}{
		{"021512345bob", Packet{PacketMovement, 2, StateMoving, DirUpRight, 12345, "bob"}},
		{"13001ana", Packet{PacketJoin, 3, StateIdle, DirStationary, 1, "ana"}},
		{"02151", Packet{PacketMovement, 2, StateMoving, DirUpRight, 1, ""}},
	}

	for _, tt := range tests {
		got, err := Decode([]byte(tt.data))
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.data, err)
		}
		if got != tt.want {
			t.Errorf("Decode(%q) = %+v, want %+v", tt.data, got, tt.want)
		}
	}
}

func TestPacketRoundTrip(t *testing.T) {
	tests := []Packet{
		{PacketMovement, 7, StateMoving, DirDownLeft, 4294967295, "joão"},
		{PacketJoin, 0, StateIdle, DirStationary, 0, "x"},
		{PacketMovement, 9, StateIdle, DirDownRight, 1000, ""},
	}

	for _, p := range tests {
		got, err := Decode(p.Encode())
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)): %v", p, err)
		}
		if got != p {
			t.Errorf("round trip de %+v devolveu %+v", p, got)
		}
	}
}

func TestDecodeMalformado(t *testing.T) {
	tests := []string{
		"",
		"021",
		"0a1512345bob",
		"0215bob",
		"021599999999999x",
	}

	for _, data := range tests {
		if _, err := Decode([]byte(data)); !errors.Is(err, ErrPacoteMalformado) {
			t.Errorf("Decode(%q): erro = %v, esperava ErrPacoteMalformado", data, err)
		}
	}
}
