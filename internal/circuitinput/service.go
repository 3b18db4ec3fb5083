package circuitinput

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"math"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/bignum"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/certificate"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput/metrics"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/sentinel"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/requestcontext"
)

const tracerName = "github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"

// Service turns payloads into circuit inputs for one circuit build. All of
// its fields are set in New and only read afterwards, so Generate may be
// called concurrently.
type Service struct {
	params       CircuitParams
	encoder      *bignum.Encoder
	modulusLimbs []string
	redcLimbs    []string

	prover  Prover
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	debug   bool
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithProver(p Prover) Option {
	return func(s *Service) {
		s.prover = p
	}
}

// WithDebug lets the service log signatures, moduli, signals and document
// bytes. Off unless the operator opts in.
func WithDebug(debug bool) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// New validates params, resolves the modulus once and precomputes the
// modulus and Barrett limbs shared by every request.
func New(ctx context.Context, params CircuitParams, source certificate.Source, opts ...Option) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	encoder, err := bignum.NewEncoder(params.LimbWidth, params.LimbCount)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, dErrors.New(dErrors.CodeConfiguration, "certificate source is required")
	}
	modulus, err := source.Modulus(ctx)
	if err != nil {
		return nil, err
	}
	modulusLimbs, err := encoder.Encode(modulus)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOverflow, "modulus does not fit the limb layout")
	}
	redc, err := bignum.BarrettParameter(modulus, params.OverflowBits)
	if err != nil {
		return nil, err
	}
	redcLimbs, err := encoder.Encode(redc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOverflow, "barrett parameter does not fit the limb layout")
	}

	s := &Service{
		params:       params,
		encoder:      encoder,
		modulusLimbs: modulusLimbs,
		redcLimbs:    redcLimbs,
		logger:       slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.debug {
		s.logger.Debug("modulus resolved",
			"modulus", modulus.Text(16),
			"modulus_bits", modulus.BitLen(),
		)
	}
	return s, nil
}

// Params returns the circuit contract the service was built for.
func (s *Service) Params() CircuitParams {
	return s.params
}

// Generate runs the full pipeline for one request. Any stage failure aborts
// the run and no input is returned.
func (s *Service) Generate(ctx context.Context, req Request) (*CircuitInput, error) {
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	ctx, span := s.tracer.Start(ctx, "circuitinput.Generate")
	defer span.End()

	input, signedLen, err := s.generate(ctx, req)
	if err != nil {
		code := dErrors.CodeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		s.metrics.ObserveGenerate(string(code), time.Since(start))
		s.logger.WarnContext(ctx, "circuit input generation failed",
			"request_id", requestID,
			"code", code,
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("aadhaar.signed_length", signedLen))
	s.metrics.ObserveGenerate("ok", time.Since(start))
	s.metrics.ObserveSignedLength(signedLen)
	s.logger.InfoContext(ctx, "circuit input generated",
		"request_id", requestID,
		"signed_length", signedLen,
		"padded_length", s.params.PaddedLength,
		"delimiters", len(input.DelimiterIndices),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return input, nil
}

func (s *Service) generate(ctx context.Context, req Request) (*CircuitInput, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeTimeout, "generation cancelled")
	}

	raw := req.Record
	if raw == nil {
		var err error
		raw, err = s.decompress(ctx, req.Payload)
		if err != nil {
			return nil, 0, err
		}
	}

	record, err := qrdata.Split(raw)
	if err != nil {
		return nil, 0, err
	}

	_, span := s.tracer.Start(ctx, "qrdata.Pad")
	padded, err := qrdata.Pad(record.Signed, s.params.PaddedLength, s.params.PaddingMode)
	span.End()
	if err != nil {
		return nil, 0, err
	}
	delimiters := qrdata.ScanDelimiters(padded, qrdata.Sentinel, s.params.DelimiterMax)

	signature := new(big.Int).SetBytes(record.Signature)
	signatureLimbs, err := s.encoder.Encode(signature)
	if err != nil {
		return nil, 0, err
	}

	if s.debug {
		s.logger.DebugContext(ctx, "record split",
			"request_id", requestcontext.RequestID(ctx),
			"signed", hex.EncodeToString(record.Signed),
			"signature", hex.EncodeToString(record.Signature),
			"signal", hex.EncodeToString(req.Disclosure.Signal),
		)
	}

	input, err := Assemble(Parts{
		Signed:         record.Signed,
		Padded:         padded,
		Delimiters:     delimiters,
		SignatureLimbs: signatureLimbs,
		ModulusLimbs:   s.modulusLimbs,
		RedcLimbs:      s.redcLimbs,
		Disclosure:     req.Disclosure,
	})
	if err != nil {
		return nil, 0, err
	}
	return input, len(record.Signed), nil
}

func (s *Service) decompress(ctx context.Context, payload string) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "qrdata.Decompress")
	defer span.End()

	raw, err := qrdata.DecompressPayload(payload)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("aadhaar.record_length", len(raw)))
	return raw, nil
}

// Prove generates the input and hands it to the prover: execute, prove,
// then verify. Backend failures are reported as prover errors.
func (s *Service) Prove(ctx context.Context, req Request) (*ProofResult, error) {
	if s.prover == nil {
		return nil, dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeProver, "no prover configured")
	}
	input, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "circuitinput.Prove")
	defer span.End()

	var witness Witness
	if err := s.proverStage(ctx, "execute", func(ctx context.Context) (err error) {
		witness, err = s.prover.Execute(ctx, input)
		return err
	}); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var proof Proof
	if err := s.proverStage(ctx, "prove", func(ctx context.Context) (err error) {
		proof, err = s.prover.Prove(ctx, witness)
		return err
	}); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var verified bool
	if err := s.proverStage(ctx, "verify", func(ctx context.Context) (err error) {
		verified, err = s.prover.Verify(ctx, proof)
		return err
	}); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "proof generated",
		"request_id", requestcontext.RequestID(ctx),
		"proof_bytes", len(proof),
		"verified", verified,
	)
	return &ProofResult{Input: input, Proof: proof, Verified: verified}, nil
}

func (s *Service) proverStage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveProver(stage, time.Since(start))
	if err == nil {
		return nil
	}
	if dErrors.HasCode(err, dErrors.CodeProver) {
		return err
	}
	if ctx.Err() != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "prover "+stage+" cancelled")
	}
	return dErrors.Wrap(err, dErrors.CodeProver, "prover "+stage+" failed")
}
