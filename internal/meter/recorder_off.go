//go:build !hostmeter

package meter

import (
	"github.com/hostbind/hostbind/types"
)

// Recorder is the disabled variant. All methods are empty and inline away.
type Recorder struct{}

// Token is empty in the disabled variant.
type Token struct{}

func New() *Recorder { return nil }

func (*Recorder) Begin() Token { return Token{} }

func (*Recorder) End(string, Token) {}

func (*Recorder) Snapshot() types.MeterSnapshot { return types.MeterSnapshot{} }
