// Package jsonl 以 JSON Lines 输出报告行，每行一个对象 {"phase":...,"text":...}。
package jsonl

import (
	"bufio"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/typo42/phone-book/pkg/contract"
)

// Options: IncludeBlank 为 true 时保留纯排版用的空行。
type Options struct {
	IncludeBlank bool `json:"include_blank"`
}

type Sink struct {
	w            *bufio.Writer
	stream       *jsoniter.Stream
	includeBlank bool
}

type record struct {
	Phase string `json:"phase"`
	Text  string `json:"text"`
}

func New(w io.Writer, opts *Options) *Sink {
	if w == nil {
		w = os.Stdout
	}
	bw := bufio.NewWriter(w)
	s := &Sink{
		w:      bw,
		stream: jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, bw, 512),
	}
	if opts != nil {
		s.includeBlank = opts.IncludeBlank
	}
	return s
}

var _ contract.Sink = (*Sink)(nil)

func (s *Sink) Emit(l contract.Line) error {
	if l.Text == "" && !s.includeBlank {
		return nil
	}
	s.stream.WriteVal(record{Phase: l.Phase, Text: l.Text})
	s.stream.WriteRaw("\n")
	if err := s.stream.Flush(); err != nil {
		return err
	}
	if s.stream.Error != nil {
		return s.stream.Error
	}
	return s.w.Flush()
}

func (s *Sink) Flush() error {
	if err := s.stream.Flush(); err != nil {
		return err
	}
	return s.w.Flush()
}
