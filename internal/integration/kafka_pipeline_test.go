//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-data-alerts/internal/adapter/kafka"
	"github.com/couchcryptid/storm-data-alerts/internal/config"
	"github.com/couchcryptid/storm-data-alerts/internal/domain"
	"github.com/couchcryptid/storm-data-alerts/internal/observability"
	"github.com/couchcryptid/storm-data-alerts/internal/pipeline"
)

const (
	testSourceTopic = "test-observations"
	testSinkTopic   = "test-alerts"
)

// publishedReport holds a deserialized message read from the sink topic.
type publishedReport struct {
	Report  domain.AlertReport
	Key     string
	Headers map[string]string
}

func readReport(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedReport {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var report domain.AlertReport
	require.NoError(t, json.Unmarshal(msg.Value, &report), "unmarshal sink message")

	return publishedReport{Report: report, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func newProducer(t *testing.T, broker string) *kafkago.Writer {
	t.Helper()
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func alertIDs(alerts []domain.Alert) []string {
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader and
// kafka.Writer round-trip a bundle and its report through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-reader")

	fixture := loadBundles(t)[1] // heat advisory, Phoenix
	producer := newProducer(t, broker)
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(fixture.Key),
		Value: fixture.Bundle,
	}))

	// The consumer group may need to rebalance before partitions are assigned.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte(fixture.Key), raw.Key)
	assert.JSONEq(t, string(fixture.Bundle), string(raw.Value))
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer(domain.DefaultEngine(), nil, discardLogger())
	report, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.AlertReport{report}))

	got := readReport(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, report.ID, got.Key)
	assert.Equal(t, "Phoenix", got.Headers["location"])
	assert.Equal(t, "Advisory", got.Headers["max_severity"])
	assert.Equal(t, "2", got.Headers["alert_count"])
	_, err = time.Parse(time.RFC3339, got.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	assert.Equal(t, fixture.Expect, alertIDs(got.Report.Alerts))
	assert.Empty(t, got.Report.CalmMessage)
}

// TestPipelineEndToEnd wires Reader, Transformer and Writer against real
// Kafka and checks every fixture bundle yields its expected alerts.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-pipeline")
	fixtures := loadBundles(t)

	msgs := make([]kafkago.Message, 0, len(fixtures))
	for _, f := range fixtures {
		msgs = append(msgs, kafkago.Message{Key: []byte(f.Key), Value: f.Bundle})
	}
	require.NoError(t, newProducer(t, broker).WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	transformer := pipeline.NewTransformer(domain.DefaultEngine(), nil, discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	byLocation := make(map[string]publishedReport, len(fixtures))
	for len(byLocation) < len(fixtures) {
		got := readReport(ctx, t, consumer)
		byLocation[got.Report.Location] = got
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	for _, f := range fixtures {
		var bundle domain.WeatherBundle
		require.NoError(t, json.Unmarshal(f.Bundle, &bundle))
		name := bundle.Observation.Name

		got, ok := byLocation[name]
		if !assert.True(t, ok, "missing report for %s", f.Name) {
			continue
		}
		assert.Equal(t, f.Expect, alertIDs(got.Report.Alerts), f.Name)
		assert.Equal(t, got.Report.ID, got.Key, f.Name)
		assert.Equal(t, fmt.Sprint(len(f.Expect)), got.Headers["alert_count"], f.Name)
		if !got.Report.HasHazards() {
			assert.NotEmpty(t, got.Report.CalmMessage, f.Name)
		}
	}
}

// TestPipelineTransformError verifies that an undecodable message is skipped
// and the pipeline keeps processing valid bundles.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-poison")
	fixture := loadBundles(t)[0] // calm, Austin

	require.NoError(t, newProducer(t, broker).WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte(fixture.Key), Value: fixture.Bundle},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	transformer := pipeline.NewTransformer(domain.DefaultEngine(), nil, discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	got := readReport(ctx, t, consumer)
	assert.Equal(t, "Austin", got.Report.Location)
	assert.Equal(t, []string{domain.AlertSeismicInfo}, alertIDs(got.Report.Alerts))

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
