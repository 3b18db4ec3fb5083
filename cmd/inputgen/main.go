// Command inputgen writes circuit input fixtures (Prover.toml style) for the
// built-in sample QR, a real QR payload, or a batch of payload files.
//
//	inputgen                       # sample QR, writes AADHAAR_FIXTURE_PATH
//	REAL_DATA=true QR_DATA=... inputgen
//	inputgen -outdir out a.txt b.txt
//	inputgen -params -message "hello"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/certificate"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/platform/config"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/platform/logger"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata/sample"
)

const (
	envRealData = "REAL_DATA"
	envQRData   = "QR_DATA"
)

func main() {
	var (
		outDir  = flag.String("outdir", "", "directory for batch fixtures (default: next to each payload file)")
		params  = flag.Bool("params", false, "print RSA parameter limbs for a freshly signed message and exit")
		message = flag.String("message", "anon-aadhaar", "message signed in -params mode")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, *params, *message, *outDir, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "inputgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, paramsMode bool, message, outDir string, files []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Debug)

	if paramsMode {
		return printParams(stdout, cfg.Circuit, []byte(message))
	}

	disclosure, err := config.LoadDisclosure(os.Getenv)
	if err != nil {
		return err
	}

	realData := os.Getenv(envRealData) == "true"
	source, err := modulusSource(cfg, realData)
	if err != nil {
		return err
	}
	svc, err := circuitinput.New(ctx, cfg.Circuit, source,
		circuitinput.WithLogger(log),
		circuitinput.WithDebug(cfg.Debug),
	)
	if err != nil {
		return err
	}

	if len(files) > 0 {
		return generateBatch(ctx, svc, log, disclosure, files, outDir)
	}

	payload, err := singlePayload(realData)
	if err != nil {
		return err
	}
	input, err := svc.Generate(ctx, circuitinput.Request{Payload: payload, Disclosure: disclosure})
	if err != nil {
		return err
	}
	if err := circuitinput.WriteFixture(cfg.FixturePath, input); err != nil {
		return err
	}
	log.Info("fixture written", "path", cfg.FixturePath, "real_data", realData)
	return nil
}

// modulusSource picks the sample key unless real data or an explicit source
// was configured.
func modulusSource(cfg config.Config, realData bool) (certificate.Source, error) {
	if !realData && cfg.CertPath == "" && cfg.Modulus == "" {
		return certificate.NewStaticSource(sample.Modulus()), nil
	}
	return cfg.CertificateSource()
}

func singlePayload(realData bool) (string, error) {
	if !realData {
		return sample.Payload()
	}
	payload := strings.TrimSpace(os.Getenv(envQRData))
	if payload == "" {
		return "", fmt.Errorf("%s is required when %s=true", envQRData, envRealData)
	}
	return payload, nil
}

// generateBatch processes every payload file concurrently. Each file yields
// an independent fixture; the first failure cancels the rest.
func generateBatch(ctx context.Context, svc *circuitinput.Service, log *slog.Logger, disclosure circuitinput.Disclosure, files []string, outDir string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		file := file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			input, err := svc.Generate(ctx, circuitinput.Request{
				Payload:    strings.TrimSpace(string(data)),
				Disclosure: disclosure,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			out := fixturePath(file, outDir)
			if err := circuitinput.WriteFixture(out, input); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			log.InfoContext(ctx, "fixture written", "payload", file, "path", out)
			return nil
		})
	}
	return g.Wait()
}

func fixturePath(payloadFile, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(payloadFile), filepath.Ext(payloadFile)) + ".toml"
	if outDir == "" {
		return filepath.Join(filepath.Dir(payloadFile), base)
	}
	return filepath.Join(outDir, base)
}
