package keymap

// UsagePageKeyboard is the HID Keyboard/Keypad usage page, shifted into the
// upper 32 bits the way hidutil expects it.
const UsagePageKeyboard uint64 = 0x07 << 32

// HID usage IDs on the keyboard page.
const (
	KeyGrave          = 0x35 // ` and ~
	KeyNonUSBackslash = 0x64 // Non-US \ and |, § on ISO Apple layouts
	KeyLeftCtrl       = 0xE0
	KeyLeftShift      = 0xE1
	KeyLeftAlt        = 0xE2
	KeyLeftGUI        = 0xE3 // Command
	KeyRightCtrl      = 0xE4
	KeyRightShift     = 0xE5
	KeyRightAlt       = 0xE6 // Option
	KeyRightGUI       = 0xE7 // Command
)

// Usage returns the full hidutil code for a keyboard page usage ID.
func Usage(id uint32) uint64 {
	return UsagePageKeyboard | uint64(id)
}
