package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the stored record types. Field order is
// part of the on-disk format; append new fields at the end only.

var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS    = ord.NewMapSer[string, string](ord.String, ord.String)
)

// NoteMUS serializes Note values.
var NoteMUS = noteMUS{}

type noteMUS struct{}

func (noteMUS) Marshal(n Note, bs []byte) (off int) {
	off = ord.String.Marshal(n.ID, bs)
	off += ord.String.Marshal(n.Title, bs[off:])
	off += ord.String.Marshal(n.Content, bs[off:])
	off += stringSliceMUS.Marshal(n.CategoryIDs, bs[off:])
	off += raw.TimeUnixMicro.Marshal(n.CreatedAt, bs[off:])
	off += raw.TimeUnixMicro.Marshal(n.UpdatedAt, bs[off:])
	return
}

func (noteMUS) Unmarshal(bs []byte) (n Note, off int, err error) {
	var k int
	if n.ID, off, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if n.Title, k, err = ord.String.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if n.Content, k, err = ord.String.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if n.CategoryIDs, k, err = stringSliceMUS.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if n.CreatedAt, k, err = raw.TimeUnixMicro.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if n.UpdatedAt, k, err = raw.TimeUnixMicro.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	return
}

func (noteMUS) Size(n Note) (size int) {
	size = ord.String.Size(n.ID)
	size += ord.String.Size(n.Title)
	size += ord.String.Size(n.Content)
	size += stringSliceMUS.Size(n.CategoryIDs)
	size += raw.TimeUnixMicro.Size(n.CreatedAt)
	size += raw.TimeUnixMicro.Size(n.UpdatedAt)
	return
}

// IndexedDocumentMUS serializes IndexedDocument values.
var IndexedDocumentMUS = indexedDocumentMUS{}

type indexedDocumentMUS struct{}

func (indexedDocumentMUS) Marshal(d IndexedDocument, bs []byte) (off int) {
	off = ord.String.Marshal(d.ID, bs)
	off += ord.String.Marshal(d.Text, bs[off:])
	off += vectorMUS.Marshal(d.Vector, bs[off:])
	off += metadataMUS.Marshal(d.Metadata, bs[off:])
	off += varint.Uint64.Marshal(d.Fingerprint, bs[off:])
	off += raw.TimeUnixMicro.Marshal(d.CreatedAt, bs[off:])
	off += raw.TimeUnixMicro.Marshal(d.IndexedAt, bs[off:])
	return
}

func (indexedDocumentMUS) Unmarshal(bs []byte) (d IndexedDocument, off int, err error) {
	var k int
	if d.ID, off, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Text, k, err = ord.String.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if d.Vector, k, err = vectorMUS.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if d.Metadata, k, err = metadataMUS.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if d.Fingerprint, k, err = varint.Uint64.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if d.CreatedAt, k, err = raw.TimeUnixMicro.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	if d.IndexedAt, k, err = raw.TimeUnixMicro.Unmarshal(bs[off:]); err != nil {
		return
	}
	off += k
	return
}

func (indexedDocumentMUS) Size(d IndexedDocument) (size int) {
	size = ord.String.Size(d.ID)
	size += ord.String.Size(d.Text)
	size += vectorMUS.Size(d.Vector)
	size += metadataMUS.Size(d.Metadata)
	size += varint.Uint64.Size(d.Fingerprint)
	size += raw.TimeUnixMicro.Size(d.CreatedAt)
	size += raw.TimeUnixMicro.Size(d.IndexedAt)
	return
}
