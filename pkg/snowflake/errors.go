package snowflake

import "errors"

// 错误分类：
//   - ErrIdentityOutOfRange 配置错误，构造时失败，永不重试
//   - ErrClockBackwards     时钟回拨，跨重启（身份记录）或进程内（生成器）均可能触发；
//     只能等时钟追上或人工介入，核心不做自动重试
//   - ErrBadRecord          身份记录损坏，不自动修复（自动修复可能掩盖真实的时钟问题）
//
// 存储 I/O 错误直接包装底层 error 向上传递，调用方可用 errors.Is/As 判别。
var (
	ErrIdentityOutOfRange = errors.New("snowflake: identity out of range")
	ErrClockBackwards     = errors.New("snowflake: clock moved backwards")
	ErrBadRecord          = errors.New("snowflake: malformed worker record")
)
