// Package iocli ввод и вывод терминального клиента
package iocli

//go:generate moq -out io_mock.go . IO

// IO терминал: вывод, ввод строк и скрытый ввод паролей.
// Write позволяет отдать IO как io.Writer, например в cobra.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
