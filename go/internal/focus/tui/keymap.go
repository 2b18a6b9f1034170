package tui

// Key binding constants used in handleKey.
const (
	KeyQuit     = "q"
	KeyCtrlC    = "ctrl+c"
	KeyCreate   = "c"
	KeyJoin     = "j"
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeyBack     = "backspace"
	KeySpace    = " "
	KeyReset    = "r"
	KeyLonger   = "+"
	KeyLonger2  = "="
	KeyShorter  = "-"
	KeyShare    = "s"
	KeyLeave    = "l"
)
