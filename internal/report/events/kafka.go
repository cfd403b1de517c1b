// Package events publishes report lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ethicsaudit/internal/report/models"

	"github.com/twmb/franz-go/pkg/kgo"
)

// TypeReportGenerated is the event type header of a generated report.
const TypeReportGenerated = "report.generated"

// Producer is the part of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// ReportGenerated is the event payload. Report content is not included;
// consumers fetch it by id.
type ReportGenerated struct {
	Type          string    `json:"type"`
	ReportID      string    `json:"reportId"`
	AuditID       string    `json:"auditId"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Version       int       `json:"version"`
	ContentLength int       `json:"contentLength"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// KafkaPublisher writes one record per event, keyed by audit id so events of
// an audit stay ordered.
type KafkaPublisher struct {
	producer Producer
	topic    string
	now      func() time.Time
}

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, now: time.Now}
}

func (p *KafkaPublisher) PublishReportGenerated(ctx context.Context, report models.Report) error {
	payload, err := json.Marshal(ReportGenerated{
		Type:          TypeReportGenerated,
		ReportID:      report.ID.String(),
		AuditID:       report.AuditID.String(),
		UserID:        report.UserID.String(),
		Title:         report.Title,
		Version:       report.Version,
		ContentLength: len(report.Content),
		OccurredAt:    p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", TypeReportGenerated, err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(report.AuditID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event-type", Value: []byte(TypeReportGenerated)},
		},
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s event: %w", TypeReportGenerated, err)
	}
	return nil
}
