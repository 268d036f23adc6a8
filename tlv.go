package ecpem

import (
	"fmt"
)

// TagClass is the two high bits of an identifier octet.
type TagClass byte

const (
	ClassUniversal   TagClass = 0
	ClassApplication TagClass = 1
	ClassContext     TagClass = 2
	ClassPrivate     TagClass = 3
)

// String returns the ASN.1 name of the class.
func (c TagClass) String() string {
	switch c {
	case ClassUniversal:
		return "universal"
	case ClassApplication:
		return "application"
	case ClassContext:
		return "context"
	case ClassPrivate:
		return "private"
	}
	return "invalid"
}

const (
	classShift      = 6
	classMask       = 0xc0
	constructedMask = 0x20
	tagNumberMask   = 0x1f

	// Tag number 31 means the tag continues in the following octets.
	multiByteTag = 0x1f
)

// Universal tag numbers used by the EC private key record.
const (
	TagInteger          = 0x02
	TagBitString        = 0x03
	TagOctetString      = 0x04
	TagObjectIdentifier = 0x06
	TagSequence         = 0x10
)

// IdentifierOctet is the first octet of a DER TLV field.
type IdentifierOctet byte

// NewIdentifierOctet builds an identifier octet. Tag numbers that do not fit
// the low five bits are not representable here.
func NewIdentifierOctet(class TagClass, constructed bool, tagNumber int) IdentifierOctet {
	id := byte(class)<<classShift | byte(tagNumber)&tagNumberMask
	if constructed {
		id |= constructedMask
	}
	return IdentifierOctet(id)
}

// Class returns the tag class.
func (id IdentifierOctet) Class() TagClass {
	return TagClass((byte(id) & classMask) >> classShift)
}

// Constructed returns true if the field content is itself a sequence of fields.
func (id IdentifierOctet) Constructed() bool {
	return byte(id)&constructedMask != 0
}

// TagNumber returns the low five bits of the identifier.
func (id IdentifierOctet) TagNumber() int {
	return int(byte(id) & tagNumberMask)
}

func (id IdentifierOctet) String() string {
	form := "primitive"
	if id.Constructed() {
		form = "constructed"
	}
	return fmt.Sprintf("%s %s [%d] (0x%02x)", id.Class(), form, id.TagNumber(), byte(id))
}

// Identifiers of the EC private key record fields.
var (
	idSequence     = NewIdentifierOctet(ClassUniversal, true, TagSequence)
	idInteger      = NewIdentifierOctet(ClassUniversal, false, TagInteger)
	idOctetString  = NewIdentifierOctet(ClassUniversal, false, TagOctetString)
	idOID          = NewIdentifierOctet(ClassUniversal, false, TagObjectIdentifier)
	idBitString    = NewIdentifierOctet(ClassUniversal, false, TagBitString)
	idParameters   = NewIdentifierOctet(ClassContext, true, 0)
	idPublicKey    = NewIdentifierOctet(ClassContext, true, 1)
)

// TLVField is a decoded tag-length-value triple. Content aliases the input.
type TLVField struct {
	Tag     IdentifierOctet
	Length  int
	Content []byte
}

// maxLengthOctets bounds long form lengths to what fits an int on any platform.
const maxLengthOctets = 4

// readLength parses a definite length, short or long form, and returns the
// length and the number of octets it occupied.
func readLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("missing length octet")
	}
	first := b[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}
	count := int(first & 0x7f)
	if count == 0 {
		return 0, 0, fmt.Errorf("indefinite length is not supported")
	}
	if count > maxLengthOctets {
		return 0, 0, fmt.Errorf("length uses %d octets, at most %d supported", count, maxLengthOctets)
	}
	if len(b) < 1+count {
		return 0, 0, fmt.Errorf("truncated long form length")
	}
	length := 0
	for _, c := range b[1 : 1+count] {
		length = length<<8 | int(c)
	}
	if length < 0 {
		return 0, 0, fmt.Errorf("length overflows")
	}
	return length, 1 + count, nil
}

// appendLength appends the DER length octets for n.
func appendLength(dst []byte, n int) []byte {
	if n < 0x80 {
		return append(dst, byte(n))
	}
	var buf [maxLengthOctets]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n)
		n >>= 8
	}
	dst = append(dst, 0x80|byte(len(buf)-i))
	return append(dst, buf[i:]...)
}

// readHeader parses the identifier and length octets at the start of b and
// returns them with the header size.
func readHeader(b []byte) (IdentifierOctet, int, int, error) {
	if len(b) == 0 {
		return 0, 0, 0, fmt.Errorf("missing identifier octet")
	}
	id := IdentifierOctet(b[0])
	if id.TagNumber() == multiByteTag {
		return 0, 0, 0, fmt.Errorf("multi-byte tag numbers are not supported")
	}
	length, n, err := readLength(b[1:])
	if err != nil {
		return 0, 0, 0, err
	}
	return id, length, 1 + n, nil
}

// ReadTLV parses one field from the start of b and returns it along with the
// bytes that follow it.
func ReadTLV(b []byte) (*TLVField, []byte, error) {
	id, length, n, err := readHeader(b)
	if err != nil {
		return nil, nil, err
	}
	if len(b)-n < length {
		return nil, nil, fmt.Errorf("content of %d bytes exceeds the %d bytes available", length, len(b)-n)
	}
	return &TLVField{Tag: id, Length: length, Content: b[n : n+length]}, b[n+length:], nil
}

// appendTLV appends a complete field to dst.
func appendTLV(dst []byte, id IdentifierOctet, content []byte) []byte {
	dst = append(dst, byte(id))
	dst = appendLength(dst, len(content))
	return append(dst, content...)
}
