package contract

import (
	"path/filepath"
	"testing"
)

// TestNormalizeFileID 验证路径规范化逻辑。
func TestNormalizeFileID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"平台分隔符", filepath.Join("data", "directory.txt"), "data/directory.txt"},
		{"相对路径回退", "./x/../y", "y"},
		{"空串", "", "."},
		{"STDIN", "-", "stdin"},
		{"Windows路径", "C:\\phone book data\\find.txt", "C:/phone book data/find.txt"},
		{"Windows根", "C:\\", "C:"},
		{"清理多余斜杠", "data//tiny///find.txt", "data/tiny/find.txt"},
		{"仅分隔符", "\\\\\\///", "/"},
		{"复杂父目录", "a\\b\\c\\..\\..\\..\\..\\d", "../d"},
		{"空格路径", "phone book\\small_directory.txt", "phone book/small_directory.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFileID(tt.input); string(got) != tt.expected {
				t.Errorf("NormalizeFileID(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInputLen(t *testing.T) {
	in := Input{ID: "d", Lines: []string{"1 A", "", "2 B"}}
	if in.Len() != 3 {
		t.Fatalf("空行应计入行数: %d", in.Len())
	}
	if (Input{}).Len() != 0 {
		t.Fatalf("零值应为 0")
	}
}

// BenchmarkNormalizeFileID 性能基准测试
func BenchmarkNormalizeFileID(b *testing.B) {
	paths := []string{
		"C:\\app\\phone book data\\directory.txt",
		"data/../testdata/find.txt",
		"very/long/path/with/many/segments/and/mixed\\separators/file.txt",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range paths {
			NormalizeFileID(p)
		}
	}
}
