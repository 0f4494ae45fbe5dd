package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio IO поверх потоков процесса или любых reader/writer.
// Один буферизованный reader на весь сеанс, чтобы построчный ввод не терялся.
type Stdio struct {
	out    io.Writer
	reader *bufio.Reader
	fd     int
	isTTY  bool
}

// NewStdio IO поверх os.Stdin и os.Stdout
func NewStdio() IO {
	s := NewStdioFrom(os.Stdin, os.Stdout)
	fd := int(os.Stdin.Fd())
	s.fd = fd
	s.isTTY = term.IsTerminal(fd)
	return s
}

// NewStdioFrom IO поверх произвольных потоков. Пароль читается как обычная строка.
func NewStdioFrom(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		out:    out,
		reader: bufio.NewReader(in),
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает строку без пробелов по краям.
// Последняя строка без перевода строки тоже принимается.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает пароль без эха, если ввод - терминал
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if !s.isTTY {
		input, err := s.ReadInput(prompt)
		if err != nil {
			return "", err
		}
		return input, nil
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(s.fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
