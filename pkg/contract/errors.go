package contract

import "errors"

// 最小错误分类（哨兵）。
var (
	// ErrPathInvalid: 工件标识映射为无效/越界路径（例如绝对路径或 '..' 逃逸）。
	ErrPathInvalid = errors.New("path invalid")
	// ErrInvalidInput: 输入或配置不满足前置条件。
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation: 领域不变量违例（例如排序结果不是输入的置换）。
	ErrInvariantViolation = errors.New("invariant violation")
)
