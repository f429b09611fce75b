package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/typo42/phone-book/pkg/contract"
)

// Options 为 FileSystem Reader 的可选配置。
type Options struct {
	// BufSize 为读缓冲区初始大小（字节）。默认 64KiB。
	BufSize int `json:"buf_size"`
	// MaxLineBytes 为单行上限。默认 1MiB；超出即报错而非截断。
	MaxLineBytes int `json:"max_line_bytes"`
}

// FileSystem 从常规文件或 STDIN（"-"）一次性读入全部行。
type FileSystem struct {
	bufSize int
	maxLine int
	stdin   io.Reader
}

// New 创建 FileSystem Reader。
func New(opts *Options) *FileSystem {
	r := &FileSystem{bufSize: 64 * 1024, maxLine: 1024 * 1024, stdin: os.Stdin}
	if opts != nil && opts.BufSize > 0 {
		r.bufSize = opts.BufSize
	}
	if opts != nil && opts.MaxLineBytes > 0 {
		r.maxLine = opts.MaxLineBytes
	}
	if r.bufSize > r.maxLine {
		r.bufSize = r.maxLine
	}
	return r
}

var _ contract.LineReader = (*FileSystem)(nil)

// ReadLines 读取 path 的全部行，句柄在返回前关闭。
// 行尾 "\r\n" 归一为无换行文本；最后一行无换行符时同样计入；空行保留。
// 仅接受常规文件（符号链接按目标判断），目录与设备文件返回 ErrInvalidInput。
func (r *FileSystem) ReadLines(ctx context.Context, path string) (contract.Input, error) {
	select {
	case <-ctx.Done():
		return contract.Input{}, ctx.Err()
	default:
	}
	id := contract.NormalizeFileID(path)
	if strings.TrimSpace(path) == "-" {
		lines, err := r.scan(ctx, r.stdin)
		return contract.Input{ID: id, Lines: lines}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return contract.Input{}, err
	}
	if !info.Mode().IsRegular() {
		return contract.Input{}, fmt.Errorf("%w: %s is not a regular file", contract.ErrInvalidInput, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return contract.Input{}, err
	}
	defer f.Close()
	lines, err := r.scan(ctx, f)
	if err != nil {
		return contract.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return contract.Input{ID: id, Lines: lines}, nil
}

func (r *FileSystem) scan(ctx context.Context, src io.Reader) ([]string, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, r.bufSize), r.maxLine)
	var lines []string
	for n := 0; sc.Scan(); n++ {
		// 每 4096 行检查一次取消
		if n&4095 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
