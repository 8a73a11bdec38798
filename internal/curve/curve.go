// Package curve implements the EllipticCurve object model (spec §3):
// named or explicitly-specified curves over prime or binary fields, point
// membership testing, point decoding, and a small curve database.
package curve

import "math/big"

// Point is an affine elliptic-curve point. The point at infinity is
// represented by nil X and Y.
type Point struct {
	X, Y *big.Int
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil && p.Y == nil
}

// Equal reports whether p and q are the same affine point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Curve is implemented by both field variants.
type Curve interface {
	// Name is the registered curve name, or "" for an explicit curve.
	Name() string
	// FieldKind returns "prime" or "binary".
	FieldKind() string
	// OnCurve reports whether p satisfies the curve equation.
	OnCurve(p Point) bool
	// Generator returns the curve's base point G.
	Generator() Point
	// Order returns the curve's order n.
	Order() *big.Int
	// Cofactor returns the curve's cofactor h.
	Cofactor() *big.Int
	// BitSize returns the field's bit size (p's bit length, or m for GF(2^m)).
	BitSize() int
	// IsKoblitz reports whether this is a known Koblitz curve (one admitting
	// an efficiently computable endomorphism, e.g. secp256k1, sect*k1).
	IsKoblitz() bool
}

// PrimeField is an elliptic curve y^2 = x^3 + ax + b (mod p).
type PrimeField struct {
	CurveName       string
	P, A, B, N, H   *big.Int
	Gx, Gy          *big.Int
	Koblitz         bool
}

func (c *PrimeField) Name() string      { return c.CurveName }
func (c *PrimeField) FieldKind() string { return "prime" }
func (c *PrimeField) Generator() Point  { return Point{X: c.Gx, Y: c.Gy} }
func (c *PrimeField) Order() *big.Int   { return c.N }
func (c *PrimeField) Cofactor() *big.Int { return c.H }
func (c *PrimeField) BitSize() int      { return c.P.BitLen() }
func (c *PrimeField) IsKoblitz() bool   { return c.Koblitz }

// OnCurve tests y^2 == x^3 + ax + b (mod p).
func (c *PrimeField) OnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if pt.X.Sign() < 0 || pt.X.Cmp(c.P) >= 0 || pt.Y.Sign() < 0 || pt.Y.Cmp(c.P) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(pt.Y, pt.Y)
	lhs.Mod(lhs, c.P)

	x3 := new(big.Int).Exp(pt.X, big.NewInt(3), c.P)
	ax := new(big.Int).Mul(c.A, pt.X)
	rhs := new(big.Int).Add(x3, ax)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)

	return lhs.Cmp(rhs) == 0
}

// DecodePoint decodes an uncompressed SEC1 octet string (0x04 || X || Y)
// into a Point. Compressed points (0x02/0x03 prefix) are rejected here;
// the engine treats them as PublicKeyPoint_NotOnCurve-adjacent malformed
// input upstream, since the teacher corpus never emits compressed points.
func (c *PrimeField) DecodePoint(octets []byte) (Point, bool) {
	byteLen := (c.P.BitLen() + 7) / 8
	if len(octets) != 1+2*byteLen || octets[0] != 0x04 {
		return Point{}, false
	}
	x := new(big.Int).SetBytes(octets[1 : 1+byteLen])
	y := new(big.Int).SetBytes(octets[1+byteLen:])
	return Point{X: x, Y: y}, true
}

// BinaryField is an elliptic curve y^2 + xy = x^3 + ax^2 + b over GF(2^m).
// Polynomial arithmetic represents field elements as *big.Int bit vectors
// and reduces modulo the irreducible polynomial described by Exponents
// (the set of nonzero-coefficient exponents, including the field degree M
// as the leading term and 0 for the constant term of a trinomial/pentanomial).
type BinaryField struct {
	CurveName     string
	M             int
	Exponents     []int // irreducible polynomial exponents, descending, Exponents[0] == M
	A, B          *big.Int
	N, H          *big.Int
	Gx, Gy        *big.Int
	Koblitz       bool
}

func (c *BinaryField) Name() string      { return c.CurveName }
func (c *BinaryField) FieldKind() string { return "binary" }
func (c *BinaryField) Generator() Point  { return Point{X: c.Gx, Y: c.Gy} }
func (c *BinaryField) Order() *big.Int   { return c.N }
func (c *BinaryField) Cofactor() *big.Int { return c.H }
func (c *BinaryField) BitSize() int      { return c.M }
func (c *BinaryField) IsKoblitz() bool   { return c.Koblitz }

// ValidExponents reports whether the irreducible-polynomial exponent set is
// well formed: distinct, all >= 0, and the leading exponent equals the
// field degree M (spec §4.2 ECDSA/EdDSA: "explicit binary-field polynomials
// validate").
func (c *BinaryField) ValidExponents() bool {
	if len(c.Exponents) == 0 || c.Exponents[0] != c.M {
		return false
	}
	seen := make(map[int]bool, len(c.Exponents))
	for _, e := range c.Exponents {
		if e < 0 || e > c.M {
			return false
		}
		if seen[e] {
			return false
		}
		seen[e] = true
	}
	return true
}

// binaryMulMod multiplies two GF(2^m) elements (as bit-vector big.Ints) and
// reduces modulo the field's irreducible polynomial.
func (c *BinaryField) binaryMulMod(a, b *big.Int) *big.Int {
	result := new(big.Int)
	x := new(big.Int).Set(a)
	modulus := c.modulusPoly()
	for i := 0; i <= b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			shifted := new(big.Int).Lsh(x, uint(i))
			result.Xor(result, shifted)
		}
	}
	return c.reduce(result, modulus)
}

func (c *BinaryField) modulusPoly() *big.Int {
	poly := new(big.Int)
	for _, e := range c.Exponents {
		poly.SetBit(poly, e, 1)
	}
	return poly
}

func (c *BinaryField) reduce(value, modulus *big.Int) *big.Int {
	v := new(big.Int).Set(value)
	degM := c.M
	for v.BitLen()-1 >= degM {
		shift := v.BitLen() - 1 - degM
		shiftedMod := new(big.Int).Lsh(modulus, uint(shift))
		v.Xor(v, shiftedMod)
	}
	return v
}

// OnCurve tests y^2 + xy == x^3 + ax^2 + b over GF(2^m).
func (c *BinaryField) OnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	x, y := pt.X, pt.Y
	if x.Sign() < 0 || x.BitLen() > c.M || y.Sign() < 0 || y.BitLen() > c.M {
		return false
	}

	y2 := c.binaryMulMod(y, y)
	xy := c.binaryMulMod(x, y)
	lhs := new(big.Int).Xor(y2, xy)

	x2 := c.binaryMulMod(x, x)
	x3 := c.binaryMulMod(x2, x)
	ax2 := c.binaryMulMod(c.A, x2)
	rhs := new(big.Int).Xor(x3, ax2)
	rhs.Xor(rhs, c.B)

	return lhs.Cmp(rhs) == 0
}

// DecodePoint decodes an uncompressed binary-field point (0x04 || X || Y),
// each coordinate ceil(m/8) bytes.
func (c *BinaryField) DecodePoint(octets []byte) (Point, bool) {
	byteLen := (c.M + 7) / 8
	if len(octets) != 1+2*byteLen || octets[0] != 0x04 {
		return Point{}, false
	}
	x := new(big.Int).SetBytes(octets[1 : 1+byteLen])
	y := new(big.Int).SetBytes(octets[1+byteLen:])
	return Point{X: x, Y: y}, true
}

// Database is the read-only, single-initialized named-curve registry
// (spec §5). Lookup misses are diagnosable but non-fatal: analysis
// continues with degraded information, per spec §3 PublicKey/ECDSA.
//
// sect283r1 is registered by name and OID in internal/oid but has no
// entry here: it is a binary-field curve (design notes, DESIGN.md)
// and is deliberately left as a registry miss rather than shipped with
// under-verified GF(2^m) domain parameters.
var Database = buildDatabase()

func buildDatabase() map[string]Curve {
	bi := func(s string) *big.Int {
		n, ok := new(big.Int).SetString(s, 16)
		if !ok {
			panic("curve: bad constant " + s)
		}
		return n
	}
	db := map[string]Curve{
		"prime256v1": &PrimeField{
			CurveName: "prime256v1",
			P:  bi("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
			A:  bi("ffffffff00000001000000000000000000000000fffffffffffffffffffffffc"),
			B:  bi("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
			N:  bi("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
			H:  big.NewInt(1),
			Gx: bi("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
			Gy: bi("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
		},
		"secp384r1": &PrimeField{
			CurveName: "secp384r1",
			P:  bi("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff"),
			A:  bi("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000fffffffc"),
			B:  bi("b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef"),
			N:  bi("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"),
			H:  big.NewInt(1),
			Gx: bi("aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7"),
			Gy: bi("3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f"),
		},
		"secp224r1": &PrimeField{
			CurveName: "secp224r1",
			P:  bi("ffffffffffffffffffffffffffffffff000000000000000000000001"),
			A:  bi("fffffffffffffffffffffffffffffffefffffffffffffffffffffffe"),
			B:  bi("b4050a850c04b3abf54132565044b0b7d7bfd8ba270b39432355ffb4"),
			N:  bi("ffffffffffffffffffffffffffff16a2e0b8f03e13dd29455c5c2a3d"),
			H:  big.NewInt(1),
			Gx: bi("b70e0cbd6bb4bf7f321390b94a03c1d356c21122343280d6115c1d21"),
			Gy: bi("bd376388b5f723fb4c22dfe6cd4375a05a07476444d5819985007e34"),
		},
		"secp521r1": &PrimeField{
			CurveName: "secp521r1",
			P:  bi("1ff" + "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
			A:  bi("1ff" + "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc"),
			B:  bi("051" + "953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00"),
			N:  bi("1ff" + "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409"),
			H:  big.NewInt(1),
			Gx: bi("c6" + "858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66"),
			Gy: bi("118" + "39296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650"),
		},
		"secp256k1": &PrimeField{
			CurveName: "secp256k1",
			P:  bi("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
			A:  big.NewInt(0),
			B:  big.NewInt(7),
			N:  bi("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
			H:  big.NewInt(1),
			Gx: bi("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
			Gy: bi("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
			Koblitz: true,
		},
	}
	return db
}

// Lookup returns a named curve from the database, or ok=false if the name
// is not present (spec §3: "A named-curve parameter missing from the
// registry is diagnosable but analysis continues with degraded information").
func Lookup(name string) (Curve, bool) {
	c, ok := Database[name]
	return c, ok
}
