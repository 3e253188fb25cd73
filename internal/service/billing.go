package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"farehub/internal/fares"
	"farehub/internal/models"
	"farehub/internal/money"
)

// CustomerDirectory lists account holders for a billing cycle.
type CustomerDirectory interface {
	RegistrationChecker
	Customers(ctx context.Context) ([]models.Customer, error)
}

// PaymentsSystem executes the charge for one customer. The call is fire and
// forget; settlement failures are handled out of band by the payments side.
type PaymentsSystem interface {
	Charge(ctx context.Context, customer models.Customer, journeys []models.Journey, amount money.Amount) error
}

// LogSource provides the event-log snapshot a billing pass runs over.
type LogSource interface {
	Snapshot() []models.ScanEvent
}

// BillingService prices reconstructed journeys and charges each customer a
// capped total once per cycle.
type BillingService struct {
	log        LogSource
	directory  CustomerDirectory
	payments   PaymentsSystem
	schedule   fares.Schedule
	classifier *fares.Classifier
	logger     *zap.Logger
}

// NewBillingService builds the aggregator.
func NewBillingService(
	log LogSource,
	directory CustomerDirectory,
	payments PaymentsSystem,
	schedule fares.Schedule,
	classifier *fares.Classifier,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		log:        log,
		directory:  directory,
		payments:   payments,
		schedule:   schedule,
		classifier: classifier,
		logger:     logger,
	}
}

// ChargeAccounts runs one billing cycle over a snapshot of the event log.
// Every customer receives exactly one charge call, including customers with
// no journeys this cycle. A failed charge is logged and does not stop the
// cycle; the returned count is the number of successful charge calls.
func (s *BillingService) ChargeAccounts(ctx context.Context) (int, error) {
	customers, err := s.directory.Customers(ctx)
	if err != nil {
		return 0, fmt.Errorf("billing: list customers: %w", err)
	}

	snapshot := s.log.Snapshot()

	charged := 0
	for _, customer := range customers {
		journeys := JourneysFor(snapshot, customer.CardID)
		total := s.totalFor(journeys)

		if err := s.payments.Charge(ctx, customer, journeys, total); err != nil {
			s.logger.Warn("charge call failed",
				zap.Int64("customer_id", customer.ID),
				zap.String("amount", total.String()),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("customer charged",
			zap.Int64("customer_id", customer.ID),
			zap.Int("journeys", len(journeys)),
			zap.String("amount", total.String()),
		)
		charged++
	}

	return charged, nil
}

// totalFor prices the journeys in log order with a running total. After each
// journey the caps are applied in a fixed order: the off-peak cap when the
// off-peak count equals the full journey count, otherwise the peak cap. The
// off-peak branch compares against the full count mid-loop, so it can only
// fire on the final journey of an all-off-peak cycle; until then even an
// all-off-peak running total is clamped by the peak cap. Tests pin this
// behavior down.
func (s *BillingService) totalFor(journeys []models.Journey) money.Amount {
	offPeakCount := 0
	var total money.Amount

	for _, journey := range journeys {
		peak := s.classifier.IsPeak(journey)
		long := s.classifier.IsLong(journey)

		if !peak {
			offPeakCount++
		}
		total = total.Add(s.schedule.Price(peak, long))

		if offPeakCount == len(journeys) && total.GreaterThan(s.schedule.OffPeakCap) {
			total = s.schedule.OffPeakCap
		} else if total.GreaterThan(s.schedule.PeakCap) {
			total = s.schedule.PeakCap
		}
	}

	return total
}
