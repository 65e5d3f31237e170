package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"
	"strike-connect/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRelayNotConnected is returned when publishing without a live relay link.
var ErrRelayNotConnected = errors.New("relay not connected")

// ResponsePublisher sends signed responses over the current relay link.
type ResponsePublisher interface {
	Connected() bool
	Publish(ctx context.Context, ev *domain.SignedEvent) error
}

// RequestDispatcher drives every request through
// received -> decrypted -> dispatched -> responded.
// Each request produces exactly one response, which is published only if
// the relay is connected at that moment.
type RequestDispatcher struct {
	codec     ports.EnvelopeCodec
	gateway   ports.PaymentGateway
	ledger    *QuotaLedger
	invoices  *InvoiceCache
	history   *PaymentHistory
	publisher ResponsePublisher
	features  domain.Features
	metrics   ports.MetricsRecorder
	log       zerolog.Logger

	wg  sync.WaitGroup
	now func() time.Time
}

// NewRequestDispatcher wires the dispatcher. metrics may be nil.
func NewRequestDispatcher(
	codec ports.EnvelopeCodec,
	gateway ports.PaymentGateway,
	ledger *QuotaLedger,
	invoices *InvoiceCache,
	history *PaymentHistory,
	publisher ResponsePublisher,
	features domain.Features,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
) *RequestDispatcher {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RequestDispatcher{
		codec:     codec,
		gateway:   gateway,
		ledger:    ledger,
		invoices:  invoices,
		history:   history,
		publisher: publisher,
		features:  features,
		metrics:   metrics,
		log:       log.With().Str("component", "dispatcher").Logger(),
		now:       time.Now,
	}
}

// Run pulls events until ctx is done or events is closed. Each event is
// handled in its own goroutine so a slow processor call only delays its
// own response. Run returns after in-flight requests finish.
func (d *RequestDispatcher) Run(ctx context.Context, events <-chan domain.RequestEnvelope) {
	defer d.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-events:
			if !ok {
				return
			}
			d.wg.Add(1)
			go func() {
				defer d.wg.Done()
				d.Process(ctx, env)
			}()
		}
	}
}

// Process handles one envelope and publishes its response.
func (d *RequestDispatcher) Process(ctx context.Context, env domain.RequestEnvelope) {
	start := time.Now()
	log := d.log.With().
		Str("dispatch_id", uuid.NewString()).
		Str("event_id", env.ID).
		Logger()

	resp := d.Handle(ctx, env, log)

	outcome := "success"
	if resp.Error != nil {
		outcome = resp.Error.Code
	}
	d.metrics.ObserveRequest(metricMethod(resp.ResultType), outcome, time.Since(start))

	d.respond(ctx, env.ID, resp, log)
}

// Handle decrypts and dispatches env. It always returns a response.
func (d *RequestDispatcher) Handle(ctx context.Context, env domain.RequestEnvelope, log zerolog.Logger) *domain.Response {
	req, err := d.codec.Decrypt(env.Content)
	if err != nil {
		log.Error().Err(err).Msg("error decrypting request")
		return errorResponse(domain.MethodUnknown, apperror.ErrUnauthorized(err))
	}

	resultType := req.Method
	if resultType == "" {
		resultType = domain.MethodUnknown
	}
	log = log.With().Str("method", resultType).Logger()
	log.Info().Msg("request received")

	result, err := d.dispatch(ctx, req, log)
	if err != nil {
		appErr := apperror.FromError(err)
		if appErr.Code == apperror.CodeNotImplemented {
			log.Warn().Msg(appErr.Message)
		} else {
			log.Error().Err(appErr).Msg("request failed")
		}
		return errorResponse(resultType, appErr)
	}
	return &domain.Response{ResultType: resultType, Result: result}
}

func (d *RequestDispatcher) dispatch(ctx context.Context, req *domain.Request, log zerolog.Logger) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("panic recovered in handler")
			result, err = nil, apperror.ErrInternal(fmt.Errorf("panic: %v", r))
		}
	}()

	switch req.Method {
	case domain.MethodPayInvoice:
		return d.payInvoice(ctx, req, log)
	case domain.MethodMakeInvoice:
		return d.makeInvoice(ctx, req, log)
	case domain.MethodLookupInvoice:
		return d.lookupInvoice(ctx, req, log)
	case domain.MethodGetBalance:
		if !d.features.BalanceEnabled {
			return nil, apperror.ErrNotImplemented(req.Method)
		}
		return d.getBalance(ctx)
	case domain.MethodListTransactions:
		if !d.features.TransactionHistoryEnabled {
			return nil, apperror.ErrNotImplemented(req.Method)
		}
		return d.listTransactions(ctx, req)
	default:
		return nil, apperror.ErrNotImplemented(req.Method)
	}
}

// metricMethod bounds the method label to the dispatch table.
func metricMethod(method string) string {
	switch method {
	case domain.MethodPayInvoice, domain.MethodMakeInvoice, domain.MethodLookupInvoice,
		domain.MethodGetBalance, domain.MethodListTransactions:
		return method
	default:
		return domain.MethodUnknown
	}
}

func (d *RequestDispatcher) respond(ctx context.Context, requestID string, resp *domain.Response, log zerolog.Logger) {
	ev, err := d.codec.EncryptAndSign(resp, requestID)
	if err != nil {
		log.Error().Err(err).Msg("failed to build response event")
		return
	}

	if !d.publisher.Connected() {
		log.Error().Str("response_id", ev.ID).Msg("relay not connected, unable to publish response")
		return
	}
	if err := d.publisher.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("response_id", ev.ID).Msg("failed to publish response")
		return
	}
	log.Debug().Str("response_id", ev.ID).Msg("response published")
}

func errorResponse(resultType string, appErr *apperror.AppError) *domain.Response {
	return &domain.Response{
		ResultType: resultType,
		Error: &domain.ResponseError{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	}
}
