package security

import (
	"bytes"
	"testing"
)

// TestOpenV4EmptyPassword reconstructs a minimal R3 /Encrypt dictionary
// (128-bit RC4, owner password unused, empty user password) the way a
// real producer would compute /U, then checks Open recovers the same
// file key and validates the empty password.
func TestOpenV4EmptyPassword(t *testing.T) {
	p := Params{
		V:               2,
		R:               3,
		P:               -4,
		Length:          128,
		EncryptMetadata: true,
		FileID:          []byte("0123456789ABCDEF"),
		StreamMethod:    MethodRC4,
		StringMethod:    MethodRC4,
	}
	// /O is conventionally derived from the owner password via Algorithm
	// 3; with no owner password set, producers commonly derive it from
	// the user password's padded form run through the same RC4 cascade.
	// For this fixture it is set equal to the standard padding, which is
	// a legal (if unusual) value: /O only feeds the key derivation hash
	// here, it is not independently validated by Open.
	p.O = make([]byte, 32)
	copy(p.O, passwordPad)

	key := computeKeyV4(p, []byte(""))
	p.U = computeUValue(p, key)

	h, err := Open(p, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(h.key, key) {
		t.Fatalf("derived key = %x, want %x", h.key, key)
	}
}

func TestOpenV4WrongPassword(t *testing.T) {
	p := Params{
		V: 2, R: 3, P: -4, Length: 128, EncryptMetadata: true,
		FileID: []byte("0123456789ABCDEF"),
	}
	p.O = make([]byte, 32)
	copy(p.O, passwordPad)

	key := computeKeyV4(p, []byte("correct horse"))
	p.U = computeUValue(p, key)

	if _, err := Open(p, "wrong password"); err != ErrWrongPassword {
		t.Fatalf("Open with wrong password: got %v, want ErrWrongPassword", err)
	}
}

func TestObjectKeyRC4RoundTrip(t *testing.T) {
	p := Params{V: 2, R: 3, P: -4, Length: 128, EncryptMetadata: true, FileID: []byte("ABCDEFGH12345678")}
	p.O = make([]byte, 32)
	copy(p.O, passwordPad)
	key := computeKeyV4(p, nil)
	p.U = computeUValue(p, key)
	p.StreamMethod = MethodRC4
	p.StringMethod = MethodRC4

	h, err := Open(p, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	plain := []byte("stream contents go here")
	enc, err := h.DecryptStream(plain, 7, 0)
	if err != nil {
		t.Fatalf("DecryptStream: %v", err)
	}
	// RC4 is an involution: decrypting the "ciphertext" with the same
	// key recovers the original bytes, so re-encrypting plain and then
	// decrypting that should round-trip.
	reenc, err := h.DecryptStream(enc, 7, 0)
	if err != nil {
		t.Fatalf("DecryptStream round-trip: %v", err)
	}
	if !bytes.Equal(reenc, plain) {
		t.Fatalf("RC4 round-trip = %q, want %q", reenc, plain)
	}
}

func TestHashV5Deterministic(t *testing.T) {
	a := hashV5([]byte("secret"), []byte("saltsalt"), nil, 6)
	b := hashV5([]byte("secret"), []byte("saltsalt"), nil, 6)
	if !bytes.Equal(a, b) {
		t.Fatalf("hashV5 not deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("hashV5 length = %d, want 32", len(a))
	}
}
