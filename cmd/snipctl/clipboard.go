package main

import (
	"errors"

	"github.com/atotto/clipboard"
)

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}
