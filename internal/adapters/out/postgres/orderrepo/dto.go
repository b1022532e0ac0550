// Package orderrepo persists order aggregates and their lifecycle event trail.
// It maps the domain aggregate to the orders table and events to the
// append-only order_events table.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/ports"
)

// OrderDTO is the database representation of an order aggregate. The pricing
// columns snapshot the quote the order was created from; they never change
// after insert.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CommerceID uuid.UUID  `gorm:"type:uuid;index"`
	QuoteID    uuid.UUID  `gorm:"type:uuid"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`

	Urgency   string `gorm:"type:varchar(16)"`
	DistanceM int
	DurationS int
	EtaMin    int
	Zone      int

	BaseZone     decimal.Decimal `gorm:"type:numeric(12,2)"`
	UrgencyAddon decimal.Decimal `gorm:"type:numeric(12,2)"`
	SundayAddon  decimal.Decimal `gorm:"type:numeric(12,2)"`
	HolidayAddon decimal.Decimal `gorm:"type:numeric(12,2)"`
	RainAddon    decimal.Decimal `gorm:"type:numeric(12,2)"`
	PeakAddon    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2)"`

	RecipientName   string `gorm:"type:varchar(255)"`
	RecipientPhone  string `gorm:"type:varchar(32)"`
	DeliveryAddress string `gorm:"type:varchar(512)"`
	Notes           string `gorm:"type:text"`

	ConfirmationCodeRequired bool
	PaymentRequired          bool

	Status      string `gorm:"type:varchar(32);index"`
	CreatedAt   time.Time
	CompletedAt *time.Time
	CanceledAt  *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderEventDTO is the database representation of one lifecycle event.
type OrderEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	EventType  string    `gorm:"type:varchar(32)"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	OccurredAt time.Time
	RecordedAt time.Time
}

// TableName overrides GORM's default naming to use "order_events".
func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	breakdown := aggregate.Breakdown()
	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CommerceID: aggregate.CommerceID().Bytes(),
		QuoteID:    aggregate.QuoteID().Bytes(),
		RiderID:    riderID,

		Urgency:   aggregate.Urgency().String(),
		DistanceM: aggregate.DistanceM(),
		DurationS: aggregate.DurationS(),
		EtaMin:    aggregate.EtaMin(),
		Zone:      aggregate.Zone(),

		BaseZone:     breakdown.BaseZone.Decimal(),
		UrgencyAddon: breakdown.UrgencyAddon.Decimal(),
		SundayAddon:  breakdown.SundayAddon.Decimal(),
		HolidayAddon: breakdown.HolidayAddon.Decimal(),
		RainAddon:    breakdown.RainAddon.Decimal(),
		PeakAddon:    breakdown.PeakAddon.Decimal(),
		Total:        breakdown.Total.Decimal(),

		RecipientName:   aggregate.RecipientName(),
		RecipientPhone:  aggregate.RecipientPhone(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Notes:           aggregate.Notes(),

		ConfirmationCodeRequired: aggregate.ConfirmationCodeRequired(),
		PaymentRequired:          aggregate.PaymentRequired(),

		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		CompletedAt: aggregate.CompletedAt(),
		CanceledAt:  aggregate.CanceledAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	commerceID, err := kernel.UUIDFromBytes(dto.CommerceID[:])
	if err != nil {
		return nil, err
	}
	quoteID, err := kernel.UUIDFromBytes(dto.QuoteID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	breakdown, err := breakdownFromDTO(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		order.NewOrderParams{
			ID:         id,
			CommerceID: commerceID,
			QuoteID:    quoteID,

			Urgency:   kernel.Urgency(dto.Urgency),
			DistanceM: dto.DistanceM,
			DurationS: dto.DurationS,
			EtaMin:    dto.EtaMin,
			Zone:      dto.Zone,
			Breakdown: breakdown,

			RecipientName:   dto.RecipientName,
			RecipientPhone:  dto.RecipientPhone,
			DeliveryAddress: dto.DeliveryAddress,
			Notes:           dto.Notes,

			ConfirmationCodeRequired: dto.ConfirmationCodeRequired,
			PaymentRequired:          dto.PaymentRequired,

			CreatedAt: dto.CreatedAt,
		},
		status,
		riderID,
		dto.CompletedAt,
		dto.CanceledAt,
	)
}

func breakdownFromDTO(dto OrderDTO) (quote.PriceBreakdown, error) {
	var breakdown quote.PriceBreakdown
	for _, field := range []struct {
		raw decimal.Decimal
		out *kernel.Money
	}{
		{dto.BaseZone, &breakdown.BaseZone},
		{dto.UrgencyAddon, &breakdown.UrgencyAddon},
		{dto.SundayAddon, &breakdown.SundayAddon},
		{dto.HolidayAddon, &breakdown.HolidayAddon},
		{dto.RainAddon, &breakdown.RainAddon},
		{dto.PeakAddon, &breakdown.PeakAddon},
		{dto.Total, &breakdown.Total},
	} {
		money, err := kernel.NewMoney(field.raw)
		if err != nil {
			return quote.PriceBreakdown{}, err
		}
		*field.out = money
	}
	return breakdown, nil
}

func eventFromPort(event ports.OrderEvent) OrderEventDTO {
	return OrderEventDTO{
		ID:         event.ID.Bytes(),
		OrderID:    event.OrderID.Bytes(),
		EventType:  string(event.EventType),
		FromStatus: event.FromStatus.String(),
		ToStatus:   event.ToStatus.String(),
		OccurredAt: event.OccurredAt,
		RecordedAt: event.RecordedAt,
	}
}

func eventToPort(dto OrderEventDTO) (ports.OrderEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OrderEvent{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.OrderEvent{}, err
	}
	fromStatus, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return ports.OrderEvent{}, err
	}
	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return ports.OrderEvent{}, err
	}

	return ports.OrderEvent{
		ID:         id,
		OrderID:    orderID,
		EventType:  order.EventType(dto.EventType),
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		OccurredAt: dto.OccurredAt,
		RecordedAt: dto.RecordedAt,
	}, nil
}
