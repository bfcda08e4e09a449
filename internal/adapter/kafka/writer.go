package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/storm-data-alerts/internal/config"
	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

// messageWriter is the subset of kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces alert reports to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple alert reports to the sink topic
// in a single WriteMessages call. Reports are keyed by id so a location's
// replays land on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, reports []domain.AlertReport) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		msg, err := serializeToMessage(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AlertReport into a Kafka message.
func serializeToMessage(report domain.AlertReport) (kafkago.Message, error) {
	out, err := domain.SerializeReport(report)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: toHeaders(out.Headers),
	}, nil
}

// headerOrder fixes the header sequence; map iteration order is random.
var headerOrder = []string{"location", "max_severity", "alert_count", "processed_at"}

func toHeaders(m map[string]string) []kafkago.Header {
	headers := make([]kafkago.Header, 0, len(m))
	for _, k := range headerOrder {
		if v, ok := m[k]; ok {
			headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
	}
	return headers
}
