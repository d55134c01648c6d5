package jffs2

import jbin "github.com/deploymenttheory/go-jffs2extract/internal/binary"

// decodeCatalogued handles the three node kinds the scanner records but
// never interprets further: it just keeps the raw bytes for later
// counting/logging.
func decodeCatalogued(buf []byte, hdr CommonHeader, offset int64) ([]byte, error) {
	if uint32(len(buf)) < hdr.TotLen {
		return nil, jbin.ErrShortBuffer
	}
	raw := make([]byte, hdr.TotLen-HeaderSize)
	copy(raw, buf[HeaderSize:hdr.TotLen])
	return raw, nil
}

// DecodeXattr catalogues an XATTR node.
func DecodeXattr(buf []byte, hdr CommonHeader, offset int64) (*Xattr, error) {
	raw, err := decodeCatalogued(buf, hdr, offset)
	if err != nil {
		return nil, err
	}
	return &Xattr{Hdr: hdr, Offset: offset, Raw: raw}, nil
}

// DecodeXref catalogues an XREF node.
func DecodeXref(buf []byte, hdr CommonHeader, offset int64) (*Xref, error) {
	raw, err := decodeCatalogued(buf, hdr, offset)
	if err != nil {
		return nil, err
	}
	return &Xref{Hdr: hdr, Offset: offset, Raw: raw}, nil
}

// DecodeSummary catalogues a SUMMARY node.
func DecodeSummary(buf []byte, hdr CommonHeader, offset int64) (*Summary, error) {
	raw, err := decodeCatalogued(buf, hdr, offset)
	if err != nil {
		return nil, err
	}
	return &Summary{Hdr: hdr, Offset: offset, Raw: raw}, nil
}
