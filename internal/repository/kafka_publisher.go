package repository

import (
	"context"
	"fmt"

	"PortRisk/internal/domain/models"
	"PortRisk/internal/domain/repository"
	pkgkafka "PortRisk/pkg/kafka"
)

// KafkaPublisher emits bar and analysis events to Kafka topics.
type KafkaPublisher struct {
	producer      *pkgkafka.Producer
	barsTopic     string
	analysesTopic string
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, barsTopic, analysesTopic string) repository.Publisher {
	return &KafkaPublisher{
		producer:      producer,
		barsTopic:     barsTopic,
		analysesTopic: analysesTopic,
	}
}

func (p *KafkaPublisher) PublishBar(ctx context.Context, bar *models.DailyClose) error {
	key := []byte(bar.Ticker)
	if err := p.producer.Publish(ctx, p.barsTopic, key, bar); err != nil {
		return fmt.Errorf("publish bar: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	key := []byte(fmt.Sprintf("%d", rec.UserID))
	if err := p.producer.Publish(ctx, p.analysesTopic, key, rec); err != nil {
		return fmt.Errorf("publish analysis: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
