// Package identity resolves who is behind a tracked event.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"tarotstats/internal/models"

	"github.com/tidwall/gjson"
)

var ErrNoContext = errors.New("no mini-app context available")

type Provider interface {
	Resolve(ctx context.Context) (models.Identity, error)
}

type Static struct {
	Identity models.Identity
}

func NewStatic(fid int64, wallet string) *Static {
	return &Static{Identity: models.Identity{FID: fid, Wallet: models.NormalizeWallet(wallet)}}
}

func (s *Static) Resolve(_ context.Context) (models.Identity, error) {
	return s.Identity, nil
}

type Anonymous struct{}

func (Anonymous) Resolve(_ context.Context) (models.Identity, error) {
	return models.Identity{}, nil
}

// FarcasterContext reads the mini-app context document the host hands to the
// app. The document is loaded on every Resolve so a refreshed context file is
// picked up.
type FarcasterContext struct {
	load func() ([]byte, error)
}

func NewFarcasterContextFile(path string) *FarcasterContext {
	return &FarcasterContext{load: func() ([]byte, error) {
		return os.ReadFile(path)
	}}
}

func NewFarcasterContext(doc []byte) *FarcasterContext {
	return &FarcasterContext{load: func() ([]byte, error) {
		return doc, nil
	}}
}

func (f *FarcasterContext) Resolve(ctx context.Context) (models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}
	data, err := f.load()
	if err != nil {
		return models.Identity{}, fmt.Errorf("read context: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return models.Identity{}, fmt.Errorf("%w: malformed document", ErrNoContext)
	}
	user := gjson.GetBytes(data, "user")
	if !user.IsObject() {
		return models.Identity{}, fmt.Errorf("%w: no user", ErrNoContext)
	}
	return parseUser(user), nil
}

func parseUser(user gjson.Result) models.Identity {
	var id models.Identity
	if fid := user.Get("fid"); fid.Type == gjson.Number && fid.Num > 0 && fid.Num == float64(fid.Int()) {
		id.FID = fid.Int()
	}
	for _, path := range []string{"walletAddress", "wallet"} {
		if w := user.Get(path); w.Type == gjson.String && strings.TrimSpace(w.Str) != "" {
			id.Wallet = models.NormalizeWallet(w.Str)
			break
		}
	}
	return id
}

// Chain returns the first identity resolved by providers that is not
// anonymous. Errors are skipped; the last one is returned when nothing
// resolves.
type Chain []Provider

func (c Chain) Resolve(ctx context.Context) (models.Identity, error) {
	var lastErr error
	for _, p := range c {
		id, err := p.Resolve(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if !id.IsAnonymous() {
			return id, nil
		}
	}
	return models.Identity{}, lastErr
}
