package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"starmap/internal/core/application/idempotency"
	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/order"
	"starmap/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Chart parameters the shop does not collect.
const (
	DefaultUTCOffset     = 1
	DefaultConstellation = true
)

const tracerName = "starmap/pipeline"

// ProcessOrderResult describes a delivery that ended without failure.
// For ALREADY_DONE and IN_PROGRESS only Stage, Trace, OrderID and, when
// known, Artifact.URL are set.
type ProcessOrderResult struct {
	Stage     Stage
	Trace     []Stage
	OrderID   int64
	OrderName string
	PlaceName string
	// Coordinates is the formatted position, e.g. "52.37° N, 4.90° E".
	Coordinates string
	Artifact    artifact.Object
	Notified    bool
}

// ProcessOrderDependencies are the collaborators of the pipeline.
type ProcessOrderDependencies struct {
	Authenticator Authenticator
	Parser        OrderParser
	Claimer       OrderClaimer
	Geocoder      ports.Geocoder
	Charts        ports.ChartRenderer
	Documents     ports.DocumentRenderer
	Store         ports.ArtifactStore
	Notifier      ports.Notifier
	Logger        *slog.Logger
	// Now defaults to time.Now. It stamps document keys.
	Now func() time.Time
}

// ProcessOrderCommandHandler runs the fulfillment pipeline for one delivery.
// Stages run strictly in order and the first failure ends the run with a
// *PipelineError; nothing is retried. A failed notification is logged and
// does not fail the run.
//
// A claim taken by a run that later fails is kept, so redeliveries report
// IN_PROGRESS until the claim expires or an operator releases it.
//
// Example:
//
//	handler := commands.NewProcessOrderCommandHandler(deps)
//	result, err := handler.Handle(ctx, commands.NewProcessOrderCommand(body, sig))
//	var perr *commands.PipelineError
//	if errors.As(err, &perr) {
//	    log.Printf("%s: %s", perr.Category, perr.Detail)
//	}
type ProcessOrderCommandHandler struct {
	deps   ProcessOrderDependencies
	logger *slog.Logger
	tracer trace.Tracer
}

// NewProcessOrderCommandHandler creates the pipeline handler.
func NewProcessOrderCommandHandler(deps ProcessOrderDependencies) ProcessOrderCommandHandler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return ProcessOrderCommandHandler{
		deps:   deps,
		logger: deps.Logger.With("component", "pipeline"),
		tracer: otel.Tracer(tracerName),
	}
}

// Handle runs the pipeline. It returns a result for every successful
// terminal state and a *PipelineError for every failure.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	ctx, span := h.tracer.Start(ctx, "pipeline.process_order")
	defer span.End()

	run := &pipelineRun{handler: h, result: ProcessOrderResult{}}
	run.advance(StageReceived)

	result, err := run.execute(ctx, cmd)
	if err != nil {
		var perr *PipelineError
		if errors.As(err, &perr) {
			span.SetAttributes(attribute.String("pipeline.failure_category", string(perr.Category)))
			h.logger.ErrorContext(ctx, "order processing failed",
				"orderId", result.OrderID,
				"stage", perr.Stage,
				"category", perr.Category,
				"detail", perr.Detail,
				"error", perr.Err,
			)
		}
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", result.OrderID),
		attribute.String("pipeline.stage", string(result.Stage)),
	)
	return result, nil
}

type pipelineRun struct {
	handler *ProcessOrderCommandHandler
	result  ProcessOrderResult
}

func (r *pipelineRun) advance(stage Stage) {
	r.result.Stage = stage
	r.result.Trace = append(r.result.Trace, stage)
}

func (r *pipelineRun) fail(category FailureCategory, detail string, clientFault bool, err error) error {
	return newPipelineError(r.result.Stage, category, detail, clientFault, err)
}

func (r *pipelineRun) execute(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	h := r.handler
	deps := h.deps

	if !deps.Authenticator.Verify(cmd.Body(), cmd.Signature()) {
		return r.result, r.fail(AuthenticationFailure, "invalid webhook signature", true, nil)
	}
	r.advance(StageAuthenticated)

	orderID, err := deps.Parser.OrderID(cmd.Body())
	if err != nil {
		return r.result, r.fail(ParseFailure, "could not read order id", true, err)
	}
	r.result.OrderID = orderID

	decision, err := traced(ctx, h.tracer, "pipeline.acquire", func(ctx context.Context) (idempotency.Decision, error) {
		return deps.Claimer.Acquire(ctx, orderID)
	})
	if err != nil {
		return r.result, r.fail(StorageFailure, "could not check order state", false, err)
	}

	switch decision.Outcome {
	case idempotency.AlreadyDone:
		r.result.Artifact.URL = decision.ArtifactURL
		r.advance(StageAlreadyDone)
		return r.result, nil
	case idempotency.InProgress:
		r.advance(StageInProgress)
		return r.result, nil
	case idempotency.Claimed:
		r.advance(StageClaimed)
	default:
		return r.result, r.fail(StorageFailure, "unexpected claim outcome "+decision.Outcome.String(), false, nil)
	}

	rec, err := deps.Parser.Extract(cmd.Body())
	if err != nil {
		return r.result, r.fail(ParseFailure, "could not parse order", true, err)
	}
	r.result.OrderName = rec.Name()
	r.advance(StageParsed)
	h.logger.InfoContext(ctx, "order parsed",
		"orderId", rec.ID(),
		"name", rec.Name(),
		"location", rec.Location(),
		"color", rec.Color().String(),
	)

	place, err := traced(ctx, h.tracer, "pipeline.geocode", func(ctx context.Context) (ports.GeocodeResult, error) {
		return deps.Geocoder.Geocode(ctx, rec.Location())
	})
	switch {
	case errors.Is(err, ports.ErrLocationNotFound):
		return r.result, r.fail(ResolutionFailure, "could not geocode location", true, err)
	case err != nil:
		return r.result, r.fail(ResolutionFailure, "geocoding service failed", false, err)
	}
	if err = place.Coordinates.Validate(); err != nil {
		return r.result, r.fail(ResolutionFailure, "geocoder returned invalid coordinates", false, err)
	}
	r.result.PlaceName = place.PlaceName
	r.result.Coordinates = place.Coordinates.String()
	r.advance(StageGeocoded)

	chart, err := traced(ctx, h.tracer, "pipeline.render_chart", func(ctx context.Context) (artifact.Chart, error) {
		return deps.Charts.Render(ctx, ports.ChartRequest{
			Coordinates:   place.Coordinates,
			Date:          rec.Date(),
			Time:          rec.Time(),
			UTCOffset:     DefaultUTCOffset,
			Constellation: DefaultConstellation,
		})
	})
	if err != nil {
		return r.result, r.fail(RenderFailure, "could not render star chart", false, err)
	}
	r.advance(StageChartRendered)

	doc, err := traced(ctx, h.tracer, "pipeline.render_document", func(ctx context.Context) (artifact.Document, error) {
		return deps.Documents.Render(ctx, documentRequest(rec, chart))
	})
	if err != nil {
		return r.result, r.fail(RenderFailure, "could not render poster document", false, err)
	}
	r.advance(StageDocumentRendered)

	key := artifact.DocumentKey(rec.ID(), deps.Now())
	stored, err := traced(ctx, h.tracer, "pipeline.store", func(ctx context.Context) (artifact.Object, error) {
		return deps.Store.Put(ctx, key, doc.PDF, artifact.ContentTypePDF)
	})
	if err != nil {
		return r.result, r.fail(StorageFailure, "could not store poster document", false, err)
	}
	r.result.Artifact = stored
	r.advance(StageStored)
	h.logger.InfoContext(ctx, "poster stored", "orderId", rec.ID(), "key", stored.Key, "size", stored.SizeLabel())

	_, err = traced(ctx, h.tracer, "pipeline.notify", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, deps.Notifier.Send(ctx, ports.Notification{
			OrderID:       rec.ID(),
			OrderName:     rec.Name(),
			CustomerEmail: rec.Email(),
			PlaceName:     place.PlaceName,
			Coordinates:   r.result.Coordinates,
			ArtifactURL:   stored.URL,
			ArtifactSize:  stored.Size,
		})
	})
	if err != nil {
		h.logger.WarnContext(ctx, "notification failed",
			"orderId", rec.ID(),
			"category", NotificationFailure,
			"error", err,
		)
		r.advance(StageNotifyFailed)
	} else {
		r.result.Notified = true
		r.advance(StageNotified)
	}

	r.advance(StageDone)
	return r.result, nil
}

func documentRequest(rec *order.Record, chart artifact.Chart) ports.DocumentRequest {
	return ports.DocumentRequest{
		Chart:    chart,
		Color:    rec.Color(),
		Message:  rec.Message(),
		Location: rec.Location(),
		Date:     rec.Date(),
		Time:     rec.Time(),
		Page:     artifact.PosterPageSize(),
	}
}

// traced runs fn inside a child span named name and records its error.
func traced[T any](ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}
