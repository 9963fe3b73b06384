// SPDX-License-Identifier: MPL-2.0

package osc

// Addresses and defaults understood by the Element audio engine.
const (
	// AddressCommand carries one string argument naming an application
	// command (for example "quit" or "save").
	AddressCommand = "/element/command"
	// AddressEngine carries an engine parameter name followed by its value.
	AddressEngine = "/element/engine"

	// EngineSampleRate is the only engine parameter the engine accepts.
	EngineSampleRate = "samplerate"

	// DefaultHost and DefaultPort are where the engine listens by default.
	DefaultHost = "localhost"
	DefaultPort = 9000
)

// CommandMessage returns the message that asks the engine to run an
// application command.
func CommandMessage(command string) *Message {
	return NewMessage(AddressCommand, String(command))
}

// SampleRateMessage returns the message that changes the engine sample rate.
func SampleRateMessage(rate int32) *Message {
	return NewMessage(AddressEngine, String(EngineSampleRate), Int32(rate))
}
