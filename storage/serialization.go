// Copyright 2025 ConceptForge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/conceptforge/exemplar/core"
)

var vectorMUS = ord.NewSliceSer[float32](varint.Float32)

// EmbeddingRecordMUS serializes EmbeddingRecord in MUS format for the
// binary backends. Field order is EntryId, Vector, Text.
var EmbeddingRecordMUS = embeddingRecordMUS{}

type embeddingRecordMUS struct{}

func (embeddingRecordMUS) Marshal(record core.EmbeddingRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(record.EntryId), bs)
	n += vectorMUS.Marshal(record.Vector, bs[n:])
	n += ord.String.Marshal(record.Text, bs[n:])
	return n
}

func (embeddingRecordMUS) Unmarshal(bs []byte) (record core.EmbeddingRecord, n int, err error) {
	raw, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	record.EntryId = core.ID(raw)

	var n1 int
	record.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	record.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (embeddingRecordMUS) Size(record core.EmbeddingRecord) (size int) {
	size = varint.Uint64.Size(uint64(record.EntryId))
	size += vectorMUS.Size(record.Vector)
	size += ord.String.Size(record.Text)
	return size
}

// MarshalEmbeddingRecord serializes an EmbeddingRecord to bytes.
func MarshalEmbeddingRecord(record *core.EmbeddingRecord) []byte {
	buf := make([]byte, EmbeddingRecordMUS.Size(*record))
	EmbeddingRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalEmbeddingRecord deserializes an EmbeddingRecord from bytes.
func UnmarshalEmbeddingRecord(data []byte) (*core.EmbeddingRecord, error) {
	record, _, err := EmbeddingRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
