// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/set"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrDuplicateAllocation = errors.New("duplicate allocation")
	ErrInvalidSpace        = errors.New("invalid account space")
)

// Allocation funds [Address] at genesis. A non-zero [Space] allocates a
// zero-filled data buffer owned by [Owner], which is how record accounts
// are created.
type Allocation struct {
	Address  string `json:"address" yaml:"address"`
	Owner    string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Lamports uint64 `json:"lamports" yaml:"lamports"`
	Space    int    `json:"space,omitempty" yaml:"space,omitempty"`
}

type Genesis struct {
	Allocations []*Allocation `json:"allocations" yaml:"allocations"`
}

// Load parses genesis bytes. YAML is accepted as well as JSON, which is a
// subset of YAML.
func Load(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := yaml.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

func LoadFile(path string) (*Genesis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// Save writes [g] to [path] as JSON or YAML depending on the extension.
func (g *Genesis) Save(path string) error {
	var (
		b   []byte
		err error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(g)
	default:
		b, err = json.MarshalIndent(g, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Supply is the total number of lamports allocated.
func (g *Genesis) Supply() (uint64, error) {
	supply := uint64(0)
	for _, alloc := range g.Allocations {
		var err error
		supply, err = safemath.Add(supply, alloc.Lamports)
		if err != nil {
			return 0, err
		}
	}
	return supply, nil
}

func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	if _, err := g.Supply(); err != nil {
		return err
	}
	seen := set.NewSet[codec.Address](len(g.Allocations))
	for _, alloc := range g.Allocations {
		addr, err := codec.StringToAddress(alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		if seen.Contains(addr) {
			return fmt.Errorf("%w: %s", ErrDuplicateAllocation, addr)
		}
		seen.Add(addr)

		owner := codec.EmptyAddress
		if len(alloc.Owner) > 0 {
			owner, err = codec.StringToAddress(alloc.Owner)
			if err != nil {
				return fmt.Errorf("%w: owner %s", err, alloc.Owner)
			}
		}
		if alloc.Space < 0 || alloc.Space > consts.MaxAccountDataLen {
			return fmt.Errorf("%w: addr=%s space=%d", ErrInvalidSpace, addr, alloc.Space)
		}
		a := &storage.Account{
			Owner:    owner,
			Lamports: alloc.Lamports,
			Data:     make([]byte, alloc.Space),
		}
		if err := storage.SetAccount(ctx, mu, addr, a); err != nil {
			return fmt.Errorf("%w: addr=%s, lamports=%d", err, addr, alloc.Lamports)
		}
	}
	return nil
}
