package dto

// IDResponse 单个 ID 响应。
// id_str 为十进制字符串：雪花 ID 超出 JS Number 的安全整数范围，
// 前端应使用字符串形式。
type IDResponse struct {
	ID           uint64 `json:"id"`
	IDStr        string `json:"id_str"`
	WorkerID     uint64 `json:"worker_id"`
	DatacenterID uint64 `json:"datacenter_id"`
	Timestamp    uint64 `json:"timestamp"`
}

// BatchIDResponse 批量 ID 响应。
type BatchIDResponse struct {
	IDs          []uint64 `json:"ids"`
	Count        int      `json:"count"`
	WorkerID     uint64   `json:"worker_id"`
	DatacenterID uint64   `json:"datacenter_id"`
}

// ParseResponse ID 拆解响应。
type ParseResponse struct {
	ID           uint64 `json:"id"`
	IDHex        string `json:"id_hex"`
	IDBinary     string `json:"id_binary"`
	Timestamp    uint64 `json:"timestamp"`
	TimestampStr string `json:"timestamp_str"`
	DatacenterID uint64 `json:"datacenter_id"`
	WorkerID     uint64 `json:"worker_id"`
	Sequence     uint64 `json:"sequence"`
}

// StatsResponse 服务统计响应。
type StatsResponse struct {
	TotalRequests     uint64  `json:"total_requests"`
	SuccessfulIDs     uint64  `json:"successful_generations"`
	FailedIDs         uint64  `json:"failed_generations"`
	SuccessRate       float64 `json:"success_rate"`
	UptimeSeconds     uint64  `json:"uptime_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// WorkerResponse worker 身份响应。
type WorkerResponse struct {
	WorkerID      uint64 `json:"worker_id"`
	DatacenterID  uint64 `json:"datacenter_id"`
	LastTimestamp uint64 `json:"last_timestamp"`
}
