package pubkey

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// buildValidDSAParams constructs a small but internally-consistent DSA
// domain (p, q, g) suitable only for exercising the analyzer's algebraic
// checks, not for any real security margin.
func buildValidDSAParams(t *testing.T) (p, q, g *big.Int) {
	t.Helper()
	q = big.NewInt(283) // prime
	// p = k*q + 1 for some k, with p prime.
	p = big.NewInt(1699) // 1699 = 6*283 + 1, prime
	require.Equal(t, int64(0), new(big.Int).Mod(new(big.Int).Sub(p, big.NewInt(1)), q).Int64())
	// find g of order q: g = h^((p-1)/q) mod p for some h, g != 1
	exp := new(big.Int).Div(new(big.Int).Sub(p, big.NewInt(1)), q)
	for h := int64(2); h < 50; h++ {
		cand := new(big.Int).Exp(big.NewInt(h), exp, p)
		if cand.Cmp(big.NewInt(1)) != 0 {
			g = cand
			break
		}
	}
	require.NotNil(t, g)
	return p, q, g
}

func TestAnalyzeDSA_ValidDomain(t *testing.T) {
	p, q, g := buildValidDSAParams(t)
	key := model.DSAPublicKey{P: p, Q: q, G: g, Y: new(big.Int).Exp(g, big.NewInt(7), p)}
	js := AnalyzeDSA(key)

	assert.False(t, js.HasCode(judgement.PublicKeyDSAPNotPrime))
	assert.False(t, js.HasCode(judgement.PublicKeyDSAQNotPrime))
	assert.False(t, js.HasCode(judgement.PublicKeyDSAPMinusOneNotDivByQ))
	assert.False(t, js.HasCode(judgement.PublicKeyDSAGOrderInvalid))
	assert.True(t, js.HasCode(judgement.PublicKeyDSAUncommonParamSizes))
}

func TestAnalyzeDSA_BadGeneratorOrder(t *testing.T) {
	p, q, _ := buildValidDSAParams(t)
	key := model.DSAPublicKey{P: p, Q: q, G: big.NewInt(2), Y: big.NewInt(5)}
	js := AnalyzeDSA(key)

	assert.True(t, js.HasCode(judgement.PublicKeyDSAGOrderInvalid))
}

func TestAnalyzeDSA_NonPrimeP(t *testing.T) {
	p, q, g := buildValidDSAParams(t)
	composite := new(big.Int).Mul(p, big.NewInt(3))
	key := model.DSAPublicKey{P: composite, Q: q, G: g, Y: big.NewInt(5)}
	js := AnalyzeDSA(key)

	assert.True(t, js.HasCode(judgement.PublicKeyDSAPNotPrime))
}
