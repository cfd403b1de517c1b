package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"ethicsaudit/internal/report/models"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestPublishReportGenerated(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewKafkaPublisher(producer, "ethicsaudit.reports")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pub.now = func() time.Time { return fixed }

	report := models.Report{
		ID:      uuid.New(),
		AuditID: uuid.New(),
		UserID:  uuid.New(),
		Title:   "Annual review",
		Content: "# Executive Summary",
		Version: models.InitialVersion,
	}
	require.NoError(t, pub.PublishReportGenerated(context.Background(), report))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, "ethicsaudit.reports", rec.Topic)
	assert.Equal(t, report.AuditID.String(), string(rec.Key))
	assert.Equal(t, []kgo.RecordHeader{{Key: "event-type", Value: []byte(TypeReportGenerated)}}, rec.Headers)

	var ev ReportGenerated
	require.NoError(t, json.Unmarshal(rec.Value, &ev))
	assert.Equal(t, ReportGenerated{
		Type:          TypeReportGenerated,
		ReportID:      report.ID.String(),
		AuditID:       report.AuditID.String(),
		UserID:        report.UserID.String(),
		Title:         "Annual review",
		Version:       1,
		ContentLength: len("# Executive Summary"),
		OccurredAt:    fixed,
	}, ev)
}

func TestPublishReportGeneratedSurfacesProduceError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker unavailable")}
	pub := NewKafkaPublisher(producer, "ethicsaudit.reports")

	err := pub.PublishReportGenerated(context.Background(), models.Report{ID: uuid.New()})
	assert.ErrorContains(t, err, "broker unavailable")
}
