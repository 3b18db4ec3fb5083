// Package nargo drives a Noir circuit through the nargo and bb command line
// tools: nargo solves the witness from a Prover.toml style input file, bb
// proves and verifies.
package nargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/sentinel"
)

// Prover implements circuitinput.Prover for a compiled Noir package.
// Commands are started with the caller's context, so cancelling it kills
// the child process. Every call works on its own files, so one Prover may
// serve concurrent requests.
type Prover struct {
	circuitDir  string
	circuitName string
	nargoBin    string
	bbBin       string
	logger      *slog.Logger

	vkMu    sync.Mutex
	vkReady bool
}

type Option func(p *Prover)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Prover) {
		p.logger = logger
	}
}

// WithBinaries overrides the nargo and bb executables looked up on PATH.
func WithBinaries(nargoBin, bbBin string) Option {
	return func(p *Prover) {
		p.nargoBin = nargoBin
		p.bbBin = bbBin
	}
}

// New targets the Noir package in circuitDir whose compiled artifact is
// target/<circuitName>.json.
func New(circuitDir, circuitName string, opts ...Option) *Prover {
	p := &Prover{
		circuitDir:  circuitDir,
		circuitName: circuitName,
		nargoBin:    "nargo",
		bbBin:       "bb",
		logger:      slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prover) targetPath(name string) string {
	return filepath.Join(p.circuitDir, "target", name)
}

func (p *Prover) bytecodePath() string {
	return p.targetPath(p.circuitName + ".json")
}

// Execute writes a per-call prover file next to Nargo.toml and solves the
// witness into a per-call witness file. Both are removed before returning.
func (p *Prover) Execute(ctx context.Context, input *circuitinput.CircuitInput) (circuitinput.Witness, error) {
	id := uuid.NewString()
	proverName := "Prover-" + id
	witnessName := "witness-" + id

	proverPath := filepath.Join(p.circuitDir, proverName+".toml")
	witnessPath := p.targetPath(witnessName + ".gz")
	defer os.Remove(proverPath)
	defer os.Remove(witnessPath)

	if err := circuitinput.WriteFixture(proverPath, input); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProver, "write prover inputs")
	}
	if err := p.run(ctx, p.nargoBin, "execute", witnessName, "--prover-name", proverName); err != nil {
		return nil, err
	}
	witness, err := os.ReadFile(witnessPath)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProver, "read witness")
	}
	return witness, nil
}

// Prove produces a proof for a witness returned by Execute.
func (p *Prover) Prove(ctx context.Context, witness circuitinput.Witness) (circuitinput.Proof, error) {
	dir, cleanup, err := workDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	witnessPath := filepath.Join(dir, "witness.gz")
	if err := writeFile(witnessPath, witness); err != nil {
		return nil, err
	}
	proofPath := filepath.Join(dir, "proof")
	if err := p.run(ctx, p.bbBin, "prove", "-b", p.bytecodePath(), "-w", witnessPath, "-o", proofPath); err != nil {
		return nil, err
	}
	proof, err := os.ReadFile(proofPath)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProver, "read proof")
	}
	return proof, nil
}

// Verify checks a proof against the circuit's verification key, writing the
// key on first use. A proof bb rejects yields false, nil.
func (p *Prover) Verify(ctx context.Context, proof circuitinput.Proof) (bool, error) {
	vkPath, err := p.verificationKey(ctx)
	if err != nil {
		return false, err
	}

	dir, cleanup, err := workDir()
	if err != nil {
		return false, err
	}
	defer cleanup()

	proofPath := filepath.Join(dir, "proof")
	if err := writeFile(proofPath, proof); err != nil {
		return false, err
	}

	err = p.run(ctx, p.bbBin, "verify", "-k", vkPath, "-p", proofPath)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		return false, nil
	default:
		return false, err
	}
}

// verificationKey writes target/vk once per Prover. A failed attempt is
// retried by the next caller.
func (p *Prover) verificationKey(ctx context.Context) (string, error) {
	vkPath := p.targetPath("vk")

	p.vkMu.Lock()
	defer p.vkMu.Unlock()
	if p.vkReady {
		return vkPath, nil
	}
	if _, err := os.Stat(vkPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(vkPath), 0o755); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeProver, "create target directory")
		}
		if err := p.run(ctx, p.bbBin, "write_vk", "-b", p.bytecodePath(), "-o", vkPath); err != nil {
			return "", err
		}
	}
	p.vkReady = true
	return vkPath, nil
}

func (p *Prover) run(ctx context.Context, bin string, args ...string) error {
	path, err := exec.LookPath(bin)
	if err != nil {
		return dErrors.Wrap(fmt.Errorf("%w: %s: %v", sentinel.ErrUnavailable, bin, err), dErrors.CodeProver, "prover tool missing")
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = p.circuitDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.logger.DebugContext(ctx, "running prover tool", "tool", bin, "args", args)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, bin+" cancelled")
		}
		return dErrors.Wrap(fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes())), dErrors.CodeProver, bin+" "+args[0]+" failed")
	}
	return nil
}

func workDir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "nargo-*")
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeProver, "create work directory")
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return dErrors.Wrap(err, dErrors.CodeProver, "write "+filepath.Base(path))
	}
	return nil
}
