// Package dispatcher 提交后旁路分发：短信通知走 Kafka，状态备份落本地文件。
package dispatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
	"github.com/wyfcoding/retailpos/pkg/mq"
)

// NotificationCommand 下发给短信网关消费方的指令
type NotificationCommand struct {
	Target  string `json:"target"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// KafkaNotifier 将发票通知指令投递到 Kafka 主题
type KafkaNotifier struct {
	producer *mq.Producer
	topic    string
}

func NewKafkaNotifier(producer *mq.Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

// Notify 按客户手机号投递短信指令。无手机号时静默跳过。
func (n *KafkaNotifier) Notify(ctx context.Context, invoice *domain.Invoice) domain.NotifyResult {
	if invoice.CustomerPhone == "" {
		return domain.NotifyResult{Delivered: false}
	}
	cmd := NotificationCommand{
		Target:  invoice.CustomerPhone,
		Subject: "invoice",
		Content: fmt.Sprintf("%s Invoice %s Total ₹%s", invoice.StoreName, invoice.InvoiceNo, invoice.GrandTotal.StringFixed(2)),
	}
	if err := n.producer.SendMessage(ctx, n.topic, invoice.CustomerPhone, cmd); err != nil {
		return domain.NotifyResult{Delivered: false, Err: err}
	}
	return domain.NotifyResult{Delivered: true}
}

// FileBackupStore 将导出的全量状态写入备份目录
type FileBackupStore struct {
	dir string
}

func NewFileBackupStore(dir string) *FileBackupStore {
	return &FileBackupStore{dir: dir}
}

func (s *FileBackupStore) Push(_ context.Context, state []byte) domain.BackupResult {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.BackupResult{Err: err}
	}
	path := filepath.Join(s.dir, fmt.Sprintf("backup_%d.json", time.Now().Unix()))
	if err := os.WriteFile(path, state, 0o644); err != nil {
		return domain.BackupResult{Err: err}
	}
	return domain.BackupResult{Pushed: true}
}

// Dispatcher 组合通知与备份两条旁路通道
type Dispatcher struct {
	notifier *KafkaNotifier
	backup   *FileBackupStore
}

func New(notifier *KafkaNotifier, backup *FileBackupStore) *Dispatcher {
	return &Dispatcher{notifier: notifier, backup: backup}
}

func (d *Dispatcher) Notify(ctx context.Context, invoice *domain.Invoice) domain.NotifyResult {
	if d.notifier == nil {
		return domain.NotifyResult{Delivered: false}
	}
	res := d.notifier.Notify(ctx, invoice)
	if res.Err != nil {
		logger.Warn(ctx, "invoice notification failed", "invoice_no", invoice.InvoiceNo, "error", res.Err)
	}
	return res
}

func (d *Dispatcher) Backup(ctx context.Context, state []byte) domain.BackupResult {
	if d.backup == nil {
		return domain.BackupResult{}
	}
	res := d.backup.Push(ctx, state)
	if res.Err != nil {
		logger.Warn(ctx, "state backup failed", "error", res.Err)
	}
	return res
}

// Noop 关闭 Kafka 时的空分发器，仅保留文件备份能力
type Noop struct{}

func (Noop) Notify(context.Context, *domain.Invoice) domain.NotifyResult {
	return domain.NotifyResult{}
}

func (Noop) Backup(context.Context, []byte) domain.BackupResult {
	return domain.BackupResult{}
}
