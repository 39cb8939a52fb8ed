// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceQwyqdnSTO77guINRIMumΣwΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicels1ΣSkNf7oUbvΔG12SqULwΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var DocumentMetadataMUS = documentMetadataMUS{}

type documentMetadataMUS struct{}

func (s documentMetadataMUS) Marshal(v DocumentMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.CollegeID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.District, bs[n:])
	n += ord.String.Marshal(v.State, bs[n:])
	n += varint.Int64.Marshal(v.EstablishedYear, bs[n:])
	n += slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Marshal(v.Streams, bs[n:])
	n += slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Marshal(v.Accreditation, bs[n:])
	n += varint.Int64.Marshal(v.MinFee, bs[n:])
	n += varint.Int64.Marshal(v.MaxFee, bs[n:])
	n += varint.Float64.Marshal(v.AvgRating, bs[n:])
	n += varint.Float64.Marshal(v.PlacementPct, bs[n:])
	n += varint.Float64.Marshal(v.AvgSalary, bs[n:])
	return n + slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Marshal(v.SourceLinks, bs[n:])
}

func (s documentMetadataMUS) Unmarshal(bs []byte) (v DocumentMetadata, n int, err error) {
	v.CollegeID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Type, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.District, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.State, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EstablishedYear, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Streams, n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Accreditation, n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MinFee, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MaxFee, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AvgRating, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PlacementPct, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AvgSalary, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceLinks, n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMetadataMUS) Size(v DocumentMetadata) (size int) {
	size = ord.String.Size(v.CollegeID)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Type)
	size += ord.String.Size(v.Location)
	size += ord.String.Size(v.District)
	size += ord.String.Size(v.State)
	size += varint.Int64.Size(v.EstablishedYear)
	size += slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Size(v.Streams)
	size += slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Size(v.Accreditation)
	size += varint.Int64.Size(v.MinFee)
	size += varint.Int64.Size(v.MaxFee)
	size += varint.Float64.Size(v.AvgRating)
	size += varint.Float64.Size(v.PlacementPct)
	size += varint.Float64.Size(v.AvgSalary)
	return size + slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Size(v.SourceLinks)
}

func (s documentMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicels1ΣSkNf7oUbvΔG12SqULwΞΞ.Skip(bs[n:])
	n += n1
	return
}

var SearchDocumentMUS = searchDocumentMUS{}

type searchDocumentMUS struct{}

func (s searchDocumentMUS) Marshal(v SearchDocument, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += DocumentMetadataMUS.Marshal(v.Metadata, bs[n:])
	return n + sliceQwyqdnSTO77guINRIMumΣwΞΞ.Marshal(v.Vector, bs[n:])
}

func (s searchDocumentMUS) Unmarshal(bs []byte) (v SearchDocument, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = DocumentMetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = sliceQwyqdnSTO77guINRIMumΣwΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s searchDocumentMUS) Size(v SearchDocument) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Text)
	size += DocumentMetadataMUS.Size(v.Metadata)
	return size + sliceQwyqdnSTO77guINRIMumΣwΞΞ.Size(v.Vector)
}

func (s searchDocumentMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DocumentMetadataMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceQwyqdnSTO77guINRIMumΣwΞΞ.Skip(bs[n:])
	n += n1
	return
}
