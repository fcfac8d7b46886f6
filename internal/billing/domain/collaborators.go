package domain

import "context"

// NotifyResult 通知结果。Err 只用于上报，不影响已提交的销售。
type NotifyResult struct {
	Delivered bool
	Err       error
}

// BackupResult 备份推送结果
type BackupResult struct {
	Pushed bool
	Err    error
}

// Dispatcher 提交后旁路协作方。定稿器在事务提交之后、不持任何锁时调用；
// 任何失败只作为警告上报，绝不回滚或阻塞已提交的销售。
type Dispatcher interface {
	Notify(ctx context.Context, invoice *Invoice) NotifyResult
	Backup(ctx context.Context, exportedState []byte) BackupResult
}

// InvoiceExporter 发票文档导出器，返回产物路径
type InvoiceExporter interface {
	Export(ctx context.Context, invoice *Invoice) (string, error)
}

// StateExporter 导出全量业务状态（商品 + 发票），供备份使用
type StateExporter interface {
	ExportAll(ctx context.Context) ([]byte, error)
}
