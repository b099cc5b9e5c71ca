// Package outboxrepo stores domain events next to the aggregate changes that raised
// them and hands pending ones to the relay.
package outboxrepo

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateType string    `gorm:"not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null"`
	EventType     string    `gorm:"not null"`
	Payload       string    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;index:idx_outbox_events_pending"`
	PublishedAt   *time.Time
}

func (OutboxDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append inserts messages. The unit of work calls it inside its transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, OutboxDTO{
			ID:            m.ID.Bytes(),
			AggregateType: m.AggregateType,
			AggregateID:   m.AggregateID.Bytes(),
			EventType:     m.EventType,
			Payload:       string(m.Payload),
			CreatedAt:     m.CreatedAt.UTC(),
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListPending returns unpublished messages oldest first.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{
			ID:            id,
			AggregateType: dto.AggregateType,
			AggregateID:   aggregateID,
			EventType:     dto.EventType,
			Payload:       []byte(dto.Payload),
			CreatedAt:     dto.CreatedAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&OutboxDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at.UTC()).Error
}
