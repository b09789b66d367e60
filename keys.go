package stepwise

// Raw byte sequences for keyboard input, for use in a Step's Send field or
// with Session.Send. These are the literal bytes a terminal sends for each
// key, so they work against any program reading the PTY in raw mode.
const (
	Enter     = "\r"
	Escape    = "\x1b"
	Tab       = "\t"
	Backspace = "\x7f"
	Space     = " "

	Up    = "\x1b[A"
	Down  = "\x1b[B"
	Right = "\x1b[C"
	Left  = "\x1b[D"

	Home     = "\x1b[H"
	End      = "\x1b[F"
	PageUp   = "\x1b[5~"
	PageDown = "\x1b[6~"
)

// Ctrl returns the byte sequence for Ctrl+<char>, e.g. Ctrl('c') is "\x03".
func Ctrl(c byte) string {
	return string(c & 0x1f)
}
