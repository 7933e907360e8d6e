package viewer

type Clipboard interface {
	WriteText(text string) error
}

type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error {
	return f(text)
}
