// Package proving declares the seam between the deterministic core
// (pkg/verify) and the zero-knowledge proving framework the real system
// delegates to (spec.md §4.13, C13). Env mirrors risc0's ExecutorEnv
// write/write_slice builder; Receipt mirrors its WrappedReceipt shape.
// This is a local, in-process stand-in: it commits and re-derives the
// journal deterministically, but provides no cryptographic soundness.
// That guarantee is the out-of-scope proving framework's job.
package proving

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dshills/xixizk/pkg/digest"
	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/verify"
)

// Env holds the three byte-slice inputs a proving run consumes (config,
// route, credential), mirroring ExecutorEnv::builder().write_slice(...).
type Env struct {
	configBytes []byte
	routeBytes  []byte
	credBytes   []byte
}

// NewEnv returns an empty Env.
func NewEnv() *Env { return &Env{} }

// WriteConfig records the archived configuration bytes.
func (e *Env) WriteConfig(b []byte) *Env { e.configBytes = b; return e }

// WriteRoute records the packed route bytes.
func (e *Env) WriteRoute(b []byte) *Env { e.routeBytes = b; return e }

// WriteCredential records the credential preimage, hashed into the
// journal but never embedded verbatim in the receipt.
func (e *Env) WriteCredential(b []byte) *Env { e.credBytes = b; return e }

// Receipt is a local, non-cryptographic stand-in for a risc0
// WrappedReceipt: the committed journal plus the exact inputs needed to
// re-derive it. A real proving backend would instead carry a succinct
// cryptographic proof here and no raw inputs at all.
type Receipt struct {
	Journal     model.Output
	ConfigBytes []byte
	RouteBytes  []byte
	CredDigest  [32]byte
}

// Prove runs the deterministic core (pkg/verify) against env's recorded
// inputs and commits the result into a Receipt's journal.
func Prove(env *Env) (*Receipt, error) {
	if env.configBytes == nil {
		return nil, fmt.Errorf("proving: no configuration written to env")
	}
	if env.routeBytes == nil {
		return nil, fmt.Errorf("proving: no route written to env")
	}

	scores, err := verify.Run(env.configBytes, env.routeBytes)
	if err != nil {
		return nil, fmt.Errorf("proving: %w", err)
	}

	journal := model.Output{
		ConfigHash:   digest.Sum(env.configBytes),
		UserCredHash: digest.Sum(env.credBytes),
		Scores:       scores,
	}

	return &Receipt{
		Journal:     journal,
		ConfigBytes: env.configBytes,
		RouteBytes:  env.routeBytes,
		CredDigest:  journal.UserCredHash,
	}, nil
}

// Verify checks a Receipt's internal self-consistency: it re-runs the
// deterministic core against the receipt's embedded config and route
// bytes and confirms the result matches the committed journal. In the
// absence of a real zkVM this does not establish that the receipt's
// holder actually knows a credential preimage hashing to CredDigest —
// only that the embedded journal is an honest account of the embedded
// inputs.
func Verify(r *Receipt) error {
	scores, err := verify.Run(r.ConfigBytes, r.RouteBytes)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !bytes.Equal(i64sToBytes(scores), i64sToBytes(r.Journal.Scores)) {
		return fmt.Errorf("verify: journal scores do not match recomputed scores")
	}
	if digest.Sum(r.ConfigBytes) != r.Journal.ConfigHash {
		return fmt.Errorf("verify: journal config hash does not match embedded config bytes")
	}
	return nil
}

func i64sToBytes(vs []int64) []byte {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[8*i:8*i+8], uint64(v))
	}
	return buf
}
