// Package security implements the PDF standard security handler: the
// password-to-file-key derivation and per-object key schedule for
// revisions 2-4 (RC4 / AES-128, Algorithms 1-2-4-5) and revisions 5-6
// (AES-256, Algorithm 2.A / the SHA-2 hardening loop ISO 32000-2 added),
// plus RC4 and AES-CBC object decryption. It knows nothing about PDF
// object syntax: pkg/pdf extracts the /Encrypt dictionary's fields and
// hands this package plain bytes and ints, avoiding an import cycle.
package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rc4"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
)

// ErrWrongPassword is returned by Open when the supplied password does
// not validate: against /U for revisions 2-4, against /U or /O for
// revisions 5-6.
var ErrWrongPassword = errors.New("security: incorrect password")

// CryptMethod names a /CF crypt filter method (or the V1/V2/V4 implicit
// method when the document has no /CF dictionary at all).
type CryptMethod string

const (
	MethodIdentity CryptMethod = "Identity"
	MethodRC4      CryptMethod = "V2"
	MethodAESV2    CryptMethod = "AESV2"
	MethodAESV3    CryptMethod = "AESV3"
)

// Params is the set of /Encrypt dictionary fields (plus the trailer's
// first /ID element) needed to open a document's security handler.
type Params struct {
	V               int
	R               int
	O               []byte
	U               []byte
	OE              []byte // R>=5 only
	UE              []byte // R>=5 only
	P               int32
	Length          int // key length in bits; defaults to 40 if zero
	EncryptMetadata bool
	FileID          []byte
	StreamMethod    CryptMethod // resolved from /CF + /StmF; MethodRC4 for V<4
	StringMethod    CryptMethod
}

// Handler decrypts strings and streams for one opened document.
type Handler struct {
	params Params
	key    []byte // file encryption key
}

var passwordPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

// Open validates password (the empty string is tried automatically by
// the caller if the real password is unknown) and derives the file key.
// It returns ErrWrongPassword if validation fails: revisions 2-4 check
// the password against U only, revisions 5-6 against U and then O.
func Open(p Params, password string) (*Handler, error) {
	if p.Length == 0 {
		p.Length = 40
	}
	h := &Handler{params: p}

	var err error
	if p.R >= 5 {
		h.key, err = openV5(p, password)
	} else {
		h.key, err = openV4(p, password)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func padPassword(password []byte) []byte {
	padded := make([]byte, 32)
	n := copy(padded, password)
	if n < 32 {
		copy(padded[n:], passwordPad)
	}
	return padded
}

func le32(p int32) []byte {
	return []byte{byte(p), byte(p >> 8), byte(p >> 16), byte(p >> 24)}
}

// --- Revision 2-4 (Algorithms 2, 4, 5) ---

func computeKeyV4(p Params, password []byte) []byte {
	padded := padPassword(password)
	h := md5.New()
	h.Write(padded)
	h.Write(p.O)
	h.Write(le32(p.P))
	h.Write(p.FileID)
	if p.R >= 4 && !p.EncryptMetadata {
		h.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	}
	digest := h.Sum(nil)

	keyLen := p.Length / 8
	if p.R >= 3 {
		for i := 0; i < 50; i++ {
			sum := md5.Sum(digest[:keyLen])
			digest = sum[:]
		}
	}
	return digest[:keyLen]
}

// computeUValue implements Algorithm 4 (R2) / Algorithm 5 (R3/R4),
// returning the 32 (R2) or 16 (R3/R4, before RC4 re-encryption rounds)
// significant bytes that /U should contain when the password is right.
func computeUValue(p Params, key []byte) []byte {
	if p.R == 2 {
		out := make([]byte, 32)
		copy(out, passwordPad)
		c, _ := rc4.NewCipher(key)
		c.XORKeyStream(out, out)
		return out
	}

	h := md5.New()
	h.Write(passwordPad)
	h.Write(p.FileID)
	digest := h.Sum(nil)

	c, _ := rc4.NewCipher(key)
	c.XORKeyStream(digest, digest)

	for i := 1; i <= 19; i++ {
		xored := make([]byte, len(key))
		for j := range key {
			xored[j] = key[j] ^ byte(i)
		}
		c, _ := rc4.NewCipher(xored)
		c.XORKeyStream(digest, digest)
	}
	return digest // first 16 bytes significant; caller compares that prefix
}

func openV4(p Params, password string) ([]byte, error) {
	key := computeKeyV4(p, []byte(password))
	u := computeUValue(p, key)

	compareLen := 32
	if p.R != 2 {
		compareLen = 16
	}
	if len(p.U) >= compareLen && bytes.Equal(u[:compareLen], p.U[:compareLen]) {
		return key, nil
	}

	// There is no owner-password path: /O is not decrypted to recover
	// the user password (Algorithm 7), so a password that fails the /U
	// check is rejected, and an owner password is accepted only when it
	// equals the user password.
	return nil, ErrWrongPassword
}

// --- Revision 5-6 (AES-256) ---

func openV5(p Params, password string) ([]byte, error) {
	pw := truncateUTF8(password, 127)

	if len(p.U) >= 48 {
		validationSalt := p.U[32:40]
		keySalt := p.U[40:48]
		hash := hashV5(pw, validationSalt, nil, p.R)
		if bytes.Equal(hash, p.U[:32]) {
			intermediate := hashV5(pw, keySalt, nil, p.R)
			return aesCBCNoPad(intermediate, p.UE, false)
		}
	}

	if len(p.O) >= 48 && len(p.U) >= 48 {
		validationSalt := p.O[32:40]
		keySalt := p.O[40:48]
		extra := p.U[:48]
		hash := hashV5(pw, validationSalt, extra, p.R)
		if bytes.Equal(hash, p.O[:32]) {
			intermediate := hashV5(pw, keySalt, extra, p.R)
			return aesCBCNoPad(intermediate, p.OE, false)
		}
	}

	return nil, ErrWrongPassword
}

func truncateUTF8(s string, max int) []byte {
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return b
}

// hashV5 implements ISO 32000-2's key-derivation hash: a plain SHA-256
// for R5 (the original, later-broken Adobe extension-level scheme), and
// the 64-round SHA-2 hardening loop for R6.
func hashV5(password, salt, extra []byte, revision int) []byte {
	h := sha256.New()
	h.Write(password)
	h.Write(salt)
	h.Write(extra)
	k := h.Sum(nil)

	if revision < 6 {
		return k
	}

	round := 0
	for {
		k1 := make([]byte, 0, 64*(len(password)+len(k)+len(extra)))
		one := append(append(append([]byte{}, password...), k...), extra...)
		for i := 0; i < 64; i++ {
			k1 = append(k1, one...)
		}

		block, _ := aes.NewCipher(k[:16])
		cbc := cipher.NewCBCEncrypter(block, k[16:32])
		e := make([]byte, len(k1))
		cbc.CryptBlocks(e, k1)

		sum := 0
		for _, b := range e[:16] {
			sum += int(b)
		}
		switch sum % 3 {
		case 0:
			s := sha256.Sum256(e)
			k = s[:]
		case 1:
			s := sha512.Sum384(e)
			k = s[:]
		case 2:
			s := sha512.Sum512(e)
			k = s[:]
		}

		round++
		lastByte := int(e[len(e)-1])
		if round >= 64 && lastByte+32 <= round {
			break
		}
	}
	return k[:32]
}

func aesCBCNoPad(key, ciphertext []byte, _ bool) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, fmt.Errorf("security: empty AES-256 key data")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("security: %w", err)
	}
	iv := make([]byte, 16)
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

// --- Per-object key schedule (Algorithm 1) and payload decryption ---

func (h *Handler) objectKey(objNum, genNum int, method CryptMethod) []byte {
	if h.params.R >= 5 {
		return h.key // AESV3 uses the file key directly, no per-object salting.
	}

	keyLen := len(h.key)
	buf := make([]byte, 0, keyLen+9)
	buf = append(buf, h.key...)
	buf = append(buf, byte(objNum), byte(objNum>>8), byte(objNum>>16))
	buf = append(buf, byte(genNum), byte(genNum>>8))
	if method == MethodAESV2 {
		buf = append(buf, 0x73, 0x41, 0x6C, 0x54) // "sAlT"
	}

	sum := md5.Sum(buf)
	n := keyLen + 5
	if n > 16 {
		n = 16
	}
	return sum[:n]
}

func unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	n := int(data[len(data)-1])
	if n == 0 || n > 16 || n > len(data) {
		return data
	}
	for i := len(data) - n; i < len(data); i++ {
		if data[i] != byte(n) {
			return data
		}
	}
	return data[:len(data)-n]
}

// DecryptStream decrypts a stream's raw (still filter-undecoded) bytes
// using the stream crypt method.
func (h *Handler) DecryptStream(data []byte, objNum, genNum int) ([]byte, error) {
	return h.decrypt(data, objNum, genNum, h.params.StreamMethod)
}

// DecryptString decrypts a literal/hex string's raw bytes using the
// string crypt method.
func (h *Handler) DecryptString(data []byte, objNum, genNum int) ([]byte, error) {
	return h.decrypt(data, objNum, genNum, h.params.StringMethod)
}

func (h *Handler) decrypt(data []byte, objNum, genNum int, method CryptMethod) ([]byte, error) {
	if len(data) == 0 || method == MethodIdentity {
		return data, nil
	}

	key := h.objectKey(objNum, genNum, method)

	switch method {
	case MethodRC4, "":
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("security: %w", err)
		}
		out := make([]byte, len(data))
		c.XORKeyStream(out, data)
		return out, nil

	case MethodAESV2, MethodAESV3:
		if len(data) < 16 {
			return nil, fmt.Errorf("security: AES payload shorter than IV")
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("security: %w", err)
		}
		iv, ciphertext := data[:16], data[16:]
		if len(ciphertext)%16 != 0 {
			return nil, fmt.Errorf("security: AES ciphertext not block-aligned")
		}
		out := make([]byte, len(ciphertext))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
		return unpad(out), nil

	default:
		return nil, fmt.Errorf("security: unsupported crypt method %q", method)
	}
}
