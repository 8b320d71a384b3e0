package cmd

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Command is an HCI command sent from host to controller.
type Command interface {
	// OpCode returns the opcode of the command.
	OpCode() int

	// Len returns the length of the command parameters.
	Len() int

	// Marshal serializes the command parameters into binary form.
	Marshal([]byte) error
}

// CommandRP is the return parameter of an HCI command.
type CommandRP interface {
	// Unmarshal de-serializes the binary data and stores the result in the receiver.
	Unmarshal(b []byte) error
}

func marshal(c Command, b []byte) error {
	buf := bytes.NewBuffer(b)
	buf.Reset()
	if buf.Cap() < c.Len() {
		return io.ErrShortBuffer
	}
	return binary.Write(buf, binary.LittleEndian, c)
}

func unmarshal(c CommandRP, b []byte) error {
	buf := bytes.NewBuffer(b)
	return binary.Read(buf, binary.LittleEndian, c)
}
