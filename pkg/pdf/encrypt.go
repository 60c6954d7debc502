package pdf

import (
	"errors"
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/security"
)

// parseEncryptParams extracts a security.Params from a PDF /Encrypt
// dictionary and the trailer's /ID, resolving indirect references
// through resolve. Only the Standard security handler is supported,
// matching the scope of spec.md §4.4.
func parseEncryptParams(dict DictionaryObject, resolve func(Object) Object, fileID []byte) (security.Params, error) {
	var p security.Params

	filterName, _ := AsName(dict["/Filter"])
	if filterName != "Standard" {
		return p, fmt.Errorf("unsupported encryption filter %q", filterName)
	}

	p.V = int(AsNumber(resolve(dict["/V"])))
	p.R = int(AsNumber(resolve(dict["/R"])))
	p.P = int32(AsNumber(resolve(dict["/P"])))
	p.FileID = fileID
	p.EncryptMetadata = true
	if em, ok := resolve(dict["/EncryptMetadata"]).(BooleanObject); ok {
		p.EncryptMetadata = bool(em)
	}

	if b, ok := Bytes(resolve(dict["/O"])); ok {
		p.O = b
	} else {
		return p, errors.New("missing or invalid /O")
	}
	if b, ok := Bytes(resolve(dict["/U"])); ok {
		p.U = b
	} else {
		return p, errors.New("missing or invalid /U")
	}
	if b, ok := Bytes(resolve(dict["/OE"])); ok {
		p.OE = b
	}
	if b, ok := Bytes(resolve(dict["/UE"])); ok {
		p.UE = b
	}

	if length, ok := resolve(dict["/Length"]).(NumberObject); ok {
		p.Length = int(length)
	} else if p.R == 2 {
		p.Length = 40
	} else {
		p.Length = 128
	}
	if p.R >= 5 {
		p.Length = 256
	}

	p.StreamMethod, p.StringMethod = resolveCryptMethods(dict, resolve, p.V)
	return p, nil
}

// resolveCryptMethods maps /StmF and /StrF (looked up in /CF) to a
// security.CryptMethod. V1/V2 documents have no /CF at all and always
// use RC4; V4 documents default both to "Identity" unless /CF says
// otherwise, per the spec.
func resolveCryptMethods(dict DictionaryObject, resolve func(Object) Object, v int) (stream, str security.CryptMethod) {
	if v < 4 {
		return security.MethodRC4, security.MethodRC4
	}

	cfDict, _ := resolve(dict["/CF"]).(DictionaryObject)
	lookup := func(nameObj Object) security.CryptMethod {
		name, ok := AsName(nameObj)
		if !ok || name == "Identity" {
			return security.MethodIdentity
		}
		entry, ok := resolve(cfDict["/"+name]).(DictionaryObject)
		if !ok {
			return security.MethodIdentity
		}
		cfm, _ := AsName(entry["/CFM"])
		switch cfm {
		case "V2":
			return security.MethodRC4
		case "AESV2":
			return security.MethodAESV2
		case "AESV3":
			return security.MethodAESV3
		default:
			return security.MethodIdentity
		}
	}

	stream = lookup(dict["/StmF"])
	str = lookup(dict["/StrF"])
	return stream, str
}
