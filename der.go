package ecpem

import (
	"bytes"
	"encoding/hex"
)

// Field sizes of the SEC1 ECPrivateKey record for secp256k1, see
// https://www.secg.org/sec1-v2.pdf, appendix C.4.
const (
	PrivateScalarLength = 32
	PublicPointLength   = 65

	ecPrivKeyVersion = 1
	versionLength    = 1
	curveOIDLength   = 5
	shortHeader      = 2
	unusedBitsLength = 1
)

// Offsets of the record fields, derived from the sizes above. Every header
// in this record uses the short length form.
const (
	versionOffset     = shortHeader
	scalarOffset      = versionOffset + shortHeader + versionLength + shortHeader
	parametersOffset  = scalarOffset + PrivateScalarLength
	curveOIDOffset    = parametersOffset + shortHeader + shortHeader
	publicKeyOffset   = curveOIDOffset + curveOIDLength
	bitStringOffset   = publicKeyOffset + shortHeader
	unusedBitsOffset  = bitStringOffset + shortHeader
	publicPointOffset = unusedBitsOffset + unusedBitsLength

	// recordLength is the size of a well-formed record.
	recordLength = publicPointOffset + PublicPointLength
)

// MinRecordLength is the shortest buffer DecodeDER looks into.
const MinRecordLength = 115

// secp256k1OID is the DER content of OID 1.3.132.0.10.
var secp256k1OID = []byte{0x2b, 0x81, 0x04, 0x00, 0x0a}

// checkpoint is a header the decoder expects at a fixed offset.
type checkpoint struct {
	field  string
	offset int
	id     IdentifierOctet
	length int
}

var recordCheckpoints = []checkpoint{
	{"ECPrivateKey", 0, idSequence, recordLength - shortHeader},
	{"version", versionOffset, idInteger, versionLength},
	{"privateKey", scalarOffset - shortHeader, idOctetString, PrivateScalarLength},
	{"parameters", parametersOffset, idParameters, shortHeader + curveOIDLength},
	{"namedCurve", curveOIDOffset - shortHeader, idOID, curveOIDLength},
	{"publicKey", publicKeyOffset, idPublicKey, shortHeader + unusedBitsLength + PublicPointLength},
	{"publicKey bit string", bitStringOffset, idBitString, unusedBitsLength + PublicPointLength},
}

// DecodeDER decodes a SEC1 ECPrivateKey record for secp256k1.
func DecodeDER(der []byte) (*KeyPair, error) {
	if len(der) < MinRecordLength {
		return nil, fieldError(ErrMalformedRecord, "", "record is %d bytes, need at least %d",
			len(der), MinRecordLength)
	}
	for _, cp := range recordCheckpoints {
		if err := cp.check(der); err != nil {
			return nil, err
		}
	}
	if der[versionOffset+shortHeader] != ecPrivKeyVersion {
		return nil, fieldError(ErrMalformedRecord, "version", "unsupported version %d",
			der[versionOffset+shortHeader])
	}
	if der[unusedBitsOffset] != 0 {
		return nil, fieldError(ErrMalformedRecord, "publicKey bit string",
			"%d unused bits, expected 0", der[unusedBitsOffset])
	}

	scalar := der[scalarOffset:parametersOffset]
	oid := der[curveOIDOffset:publicKeyOffset]
	point := der[publicPointOffset:]

	if !bytes.Equal(oid, secp256k1OID) {
		return nil, fieldError(ErrUnsupportedCurve, "namedCurve", "curve OID %x is not secp256k1", oid)
	}
	if len(scalar) != PrivateScalarLength {
		return nil, fieldError(ErrMalformedRecord, "privateKey", "scalar is %d bytes, expected %d",
			len(scalar), PrivateScalarLength)
	}
	if len(point) != PublicPointLength {
		return nil, fieldError(ErrMalformedRecord, "publicKey", "point is %d bytes, expected %d",
			len(point), PublicPointLength)
	}

	return &KeyPair{
		PrivateScalar: hex.EncodeToString(scalar),
		PublicPoint:   hex.EncodeToString(point),
	}, nil
}

func (cp checkpoint) check(der []byte) error {
	if cp.offset >= len(der) {
		return fieldError(ErrMalformedRecord, cp.field, "missing header")
	}
	id, length, _, err := readHeader(der[cp.offset:])
	if err != nil {
		return fieldError(ErrMalformedRecord, cp.field, "%v", err)
	}
	if id != cp.id {
		return fieldError(ErrMalformedRecord, cp.field, "tag is %v, expected %v", id, cp.id)
	}
	if length != cp.length {
		return fieldError(ErrMalformedRecord, cp.field, "length is %d, expected %d", length, cp.length)
	}
	return nil
}

// EncodeDER encodes the key pair as a SEC1 ECPrivateKey record for secp256k1.
func EncodeDER(kp *KeyPair) ([]byte, error) {
	scalar, point, err := kp.keyBytes()
	if err != nil {
		return nil, err
	}

	bitString := make([]byte, 0, unusedBitsLength+PublicPointLength)
	bitString = append(bitString, 0x00)
	bitString = append(bitString, point...)

	body := make([]byte, 0, recordLength-shortHeader)
	body = appendTLV(body, idInteger, []byte{ecPrivKeyVersion})
	body = appendTLV(body, idOctetString, scalar)
	body = appendTLV(body, idParameters, appendTLV(nil, idOID, secp256k1OID))
	body = appendTLV(body, idPublicKey, appendTLV(nil, idBitString, bitString))

	der := appendTLV(make([]byte, 0, recordLength), idSequence, body)
	if len(der) < MinRecordLength {
		return nil, fieldError(ErrMalformedRecord, "", "assembled record is %d bytes, need at least %d",
			len(der), MinRecordLength)
	}
	return der, nil
}
