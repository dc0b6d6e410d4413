package consts

// 通用错误码
const (
	// 成功
	CodeSuccess = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	// 参数验证失败
	CodeParamError = 10001 // 参数验证失败
	// 资源不存在
	CodeResourceNotFound = 10002 // 资源不存在
	// 请求过于频繁
	CodeTooManyRequests = 10003 // 请求过于频繁
	// 批量数量超出上限
	CodeBatchTooLarge = 10004 // 批量数量超出上限
)

// ID 生成模块错误 (12xxx)
const (
	// worker_id 或 datacenter_id 超出范围
	CodeIdentityOutOfRange = 12001 // worker_id 或 datacenter_id 超出范围
	// 时钟回拨
	CodeClockBackwards = 12002 // 时钟回拨
	// worker 身份记录损坏
	CodeWorkerRecordCorrupt = 12003 // worker 身份记录损坏
	// 非法的雪花 ID
	CodeInvalidSnowflakeID = 12004 // 非法的雪花 ID
)

// 系统错误 (3xxxx)
const (
	// 系统内部错误
	CodeInternalError = 30001 // 系统内部错误
	// 存储读写失败
	CodeStorageError = 30002 // 存储读写失败
)

// CodeMessage 错误码与提示消息的映射
var CodeMessage = map[int]string{
	CodeSuccess:             "成功",
	CodeParamError:          "参数验证失败",
	CodeResourceNotFound:    "资源不存在",
	CodeTooManyRequests:     "请求过于频繁",
	CodeBatchTooLarge:       "批量数量超出上限",
	CodeIdentityOutOfRange:  "worker_id 或 datacenter_id 超出范围",
	CodeClockBackwards:      "检测到时钟回拨，暂时无法生成 ID",
	CodeWorkerRecordCorrupt: "worker 身份记录损坏",
	CodeInvalidSnowflakeID:  "非法的雪花 ID",
	CodeInternalError:       "系统内部错误",
	CodeStorageError:        "存储读写失败",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsNonServerError 判断是不是非服务端错误（是返回true，否返回false）
func IsNonServerError(code int) bool {
	return code >= 10000 && code < 30000
}
