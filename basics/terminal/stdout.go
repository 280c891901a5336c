package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

type stdout struct {
	writer io.Writer
	column int
}

// NewStdOut creates the Output writing to the process standard output
func NewStdOut() Output {
	return NewOutput(os.Stdout)
}

// NewOutput creates the Output on top of any writer
func NewOutput(writer io.Writer) Output {
	return &stdout{
		writer: writer,
		column: 0,
	}
}

func (s *stdout) Println(input string) {
	_, _ = fmt.Fprintln(s.writer, input)
	s.column = 0
}

func (s *stdout) Printf(format string, args ...interface{}) {
	s.Print(fmt.Sprintf(format, args...))
}

func (s *stdout) Print(input string) {
	if len(input) == 0 {
		return
	}
	_, _ = fmt.Fprint(s.writer, input)

	lineBreakIdx := strings.LastIndex(input, "\n")
	if lineBreakIdx == -1 {
		s.column += runewidth.StringWidth(input)
		return
	}
	s.column = runewidth.StringWidth(input[lineBreakIdx+1:])
}

func (s *stdout) Remove(size int) {
	if size > s.column {
		size = s.column
	}
	if size == 0 {
		return
	}
	_, _ = fmt.Fprintf(s.writer, "\033[%dD\033[K", size)
	s.column -= size
}

func (s *stdout) Column() int {
	return s.column
}

var _ Output = &stdout{}
