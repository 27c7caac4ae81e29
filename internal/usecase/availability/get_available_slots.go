package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/delivery-scheduler/internal/observability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

type SlotCache interface {
	Get(ctx context.Context, key cache.SlotKey) ([]domain.Block, bool, error)
	Set(ctx context.Context, key cache.SlotKey, slots []domain.Block) error
}

type SlotsInput struct {
	ServiceOfferingID uint
	Date              string // YYYY-MM-DD, fuso da organização
	DurationMinutes   int    // <= 0 usa a duração da oferta
	Lunch             *domain.Block
}

type GetAvailableSlots struct {
	reader  domain.Reader
	cache   SlotCache
	metrics *observability.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewGetAvailableSlots(
	reader domain.Reader,
	slotCache SlotCache,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		reader:  reader,
		cache:   slotCache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) ([]domain.Block, error) {

	ctx, span := observability.Tracer().Start(ctx, "availability.GetAvailableSlots")
	defer span.End()
	span.SetAttributes(
		attribute.Int("offering.id", int(in.ServiceOfferingID)),
		attribute.String("date", in.Date),
	)

	started := time.Now()

	offering, err := uc.reader.GetServiceOffering(ctx, in.ServiceOfferingID)
	if err != nil {
		return nil, err
	}

	org, err := uc.reader.GetOrganization(ctx, offering.OrganizationID)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(in.Date, org.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if in.Lunch != nil && in.Lunch.Start >= in.Lunch.End {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = offering.DurationMinutes
	}
	if duration <= 0 || !offering.Active {
		return []domain.Block{}, nil
	}

	key := cache.SlotKey{
		OfferingID:      offering.ID,
		Date:            in.Date,
		DurationMinutes: duration,
		Lunch:           in.Lunch,
	}

	if slots, ok := uc.fromCache(ctx, key); ok {
		return slots, nil
	}

	frees, err := domain.FreeBlocks(ctx, uc.reader, domain.DayQuery{
		Offering: offering,
		Date:     date,
		Location: date.Location(),
		Now:      uc.now(),
		Lunch:    in.Lunch,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	slots := domain.Fit(frees, duration)
	uc.metrics.ObserveResolve(time.Since(started).Seconds(), len(slots))
	span.SetAttributes(attribute.Int("slots", len(slots)))

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, slots); err != nil {
			uc.logger.Warn().Err(err).Str("key", key.String()).Msg("slot cache write failed")
		}
	}

	return slots, nil
}

// fromCache nunca falha: erro de redis vira miss
func (uc *GetAvailableSlots) fromCache(ctx context.Context, key cache.SlotKey) ([]domain.Block, bool) {
	if uc.cache == nil {
		return nil, false
	}

	slots, ok, err := uc.cache.Get(ctx, key)
	switch {
	case err != nil:
		uc.metrics.ObserveSlotCache("error")
		uc.logger.Warn().Err(err).Str("key", key.String()).Msg("slot cache read failed")
		return nil, false
	case !ok:
		uc.metrics.ObserveSlotCache("miss")
		return nil, false
	}

	uc.metrics.ObserveSlotCache("hit")
	return slots, true
}
