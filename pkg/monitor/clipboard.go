package monitor

import "github.com/atotto/clipboard"

type systemClipboard struct{}

func (systemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}
