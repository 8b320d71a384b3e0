package evt

import "testing"

func TestLEEnhancedConnectionComplete(t *testing.T) {
	e := LEEnhancedConnectionComplete{
		0x0A,       // subevent code
		0x00,       // status
		0x40, 0x00, // connection handle
		0x00,             // role: central
		0x01,             // peer address type: random
		1, 2, 3, 4, 5, 6, // peer address
		0, 0, 0, 0, 0, 0, // local RPA
		0, 0, 0, 0, 0, 0, // peer RPA
		0x18, 0x00, // conn interval
		0x02, 0x00, // conn latency
		0xC8, 0x00, // supervision timeout
		0x01, // central clock accuracy
	}
	if got := e.SubeventCode(); got != LEEnhancedConnectionCompleteSubCode {
		t.Errorf("SubeventCode() = 0x%02X, want 0x%02X", got, LEEnhancedConnectionCompleteSubCode)
	}
	if got := e.Status(); got != 0x00 {
		t.Errorf("Status() = 0x%02X, want 0x00", got)
	}
	if got := e.ConnectionHandle(); got != 0x0040 {
		t.Errorf("ConnectionHandle() = 0x%04X, want 0x0040", got)
	}
	if got := e.Role(); got != 0x00 {
		t.Errorf("Role() = 0x%02X, want 0x00", got)
	}
	if got := e.PeerAddressType(); got != 0x01 {
		t.Errorf("PeerAddressType() = 0x%02X, want 0x01", got)
	}
	if got, want := e.PeerAddress(), [6]byte{1, 2, 3, 4, 5, 6}; got != want {
		t.Errorf("PeerAddress() = %v, want %v", got, want)
	}
	if got := e.ConnInterval(); got != 0x0018 {
		t.Errorf("ConnInterval() = 0x%04X, want 0x0018", got)
	}
	if got := e.ConnLatency(); got != 0x0002 {
		t.Errorf("ConnLatency() = 0x%04X, want 0x0002", got)
	}
	if got := e.SupervisionTimeout(); got != 0x00C8 {
		t.Errorf("SupervisionTimeout() = 0x%04X, want 0x00C8", got)
	}
	if got := e.MasterClockAccuracy(); got != 0x01 {
		t.Errorf("MasterClockAccuracy() = 0x%02X, want 0x01", got)
	}
}

func TestCommandComplete(t *testing.T) {
	e := CommandComplete{
		0x01,       // num hci command packets
		0x43, 0x20, // command opcode
		0x00, // return parameters: status
	}
	if got := e.NumHCICommandPackets(); got != 1 {
		t.Errorf("NumHCICommandPackets() = %d, want 1", got)
	}
	if got := e.CommandOpcode(); got != 0x2043 {
		t.Errorf("CommandOpcode() = 0x%04X, want 0x2043", got)
	}
	if got := e.ReturnParameters(); len(got) != 1 || got[0] != 0x00 {
		t.Errorf("ReturnParameters() = [ % X ], want [ 00 ]", got)
	}
}

func TestDisconnectionComplete(t *testing.T) {
	e := DisconnectionComplete{
		0x00,       // status
		0x40, 0x00, // connection handle
		0x13, // reason
	}
	if got := e.Status(); got != 0x00 {
		t.Errorf("Status() = 0x%02X, want 0x00", got)
	}
	if got := e.ConnectionHandle(); got != 0x0040 {
		t.Errorf("ConnectionHandle() = 0x%04X, want 0x0040", got)
	}
	if got := e.Reason(); got != 0x13 {
		t.Errorf("Reason() = 0x%02X, want 0x13", got)
	}
}
