package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

const topic = "server-admin"

const (
	typeAdminListReloaded = "admin_list_reloaded"
	typeGrantChanged      = "grant_changed"
	typePenaltyIssued     = "penalty_issued"
	typePenaltyLifted     = "penalty_lifted"
)

type event struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Time     time.Time   `json:"time"`
	ServerID int32       `json:"serverId"`
	Body     interface{} `json:"body"`
}

type kafkaNotifier struct {
	logger   *zap.SugaredLogger
	w        *kafka.Writer
	serverID int32
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.Config) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(zap.L()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger:   logger,
		w:        w,
		serverID: cfg.ServerID,
	}
}

func (k *kafkaNotifier) AdminListReloaded(ctx context.Context, count int) error {
	return k.publish(ctx, typeAdminListReloaded, map[string]interface{}{"count": count})
}

func (k *kafkaNotifier) GrantChanged(ctx context.Context, identity int64, change GrantChangeType) error {
	return k.publish(ctx, typeGrantChanged, map[string]interface{}{
		"identity": identity,
		"change":   string(change),
	})
}

func (k *kafkaNotifier) PenaltyIssued(ctx context.Context, rec *model.PenaltyRecord) error {
	return k.publish(ctx, typePenaltyIssued, map[string]interface{}{
		"recordId": rec.ID,
		"identity": rec.Identity,
		"kind":     string(rec.Kind),
		"reason":   rec.Reason,
		"duration": rec.Duration,
		"ends":     rec.Ends,
	})
}

func (k *kafkaNotifier) PenaltyLifted(ctx context.Context, id int64, kind model.PenaltyKind) error {
	return k.publish(ctx, typePenaltyLifted, map[string]interface{}{
		"recordId": id,
		"kind":     string(kind),
	})
}

func (k *kafkaNotifier) publish(ctx context.Context, eventType string, body interface{}) error {
	evt := event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Time:     time.Now(),
		ServerID: k.serverID,
		Body:     body,
	}

	bytes, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(eventType),
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Event-Type", Value: []byte(eventType)}},
	}); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}
