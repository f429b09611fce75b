package text

import (
	"bufio"
	"io"
	"os"

	"github.com/typo42/phone-book/pkg/contract"
)

// Sink 逐行输出纯文本（控制台格式）。
type Sink struct {
	w *bufio.Writer
}

// New 默认写 stdout。
func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{w: bufio.NewWriter(w)}
}

var _ contract.Sink = (*Sink)(nil)

// Emit 写出一行；每行立即刷新，保证长耗时阶段开始前提示已可见。
func (s *Sink) Emit(l contract.Line) error {
	if _, err := s.w.WriteString(l.Text); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *Sink) Flush() error { return s.w.Flush() }
