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


// Package storage defines persistence for embedding records.
//
// The embedding cache needs a durable home so that a restart does not
// re-embed the whole corpus. VectorStore abstracts that home; the file
// backend snapshots the cache as JSON with atomic replace, the badger
// subpackage keeps records in BadgerDB for larger corpora, and the
// in-memory store backs tests. Backends treat unreadable or corrupt
// state as an empty cache, never as a fatal error, since every record
// can be recomputed from the corpus.
package storage
