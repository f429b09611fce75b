package contract

import (
	"context"
	"io"
)

// ArtifactID: 持久化工件标识（例如 JSON 报告文件名），与 FileID 复用同一表示。
type ArtifactID = FileID

// Writer: 将结果工件以流式方式持久化到目标介质。
// 约束：
//  1. 流式写入，按字节透传，不读取/修改内容；
//  2. ctx 取消需尽快返回；
//  3. 错误直接上抛（不做重试）。
type Writer interface {
	Write(ctx context.Context, id ArtifactID, r io.Reader) error
}
