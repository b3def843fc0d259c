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


// Package corpus provides the immutable campaign corpus and its inverted
// indices.
//
// A Store is loaded once at startup from a JSON corpus file. Malformed
// records are rejected individually with a logged warning; only an
// unreadable or unparseable file fails the load. After load the store is
// read-only and safe for concurrent use without locking.
//
// Four indices are built in a single pass over the corpus:
//
//   - category -> entry ids
//   - rhetorical device -> entry ids
//   - tag -> entry ids
//   - normalized word -> entry ids
//
// On top of the indices the store offers exact lookup with set
// intersection, typo-tolerant fuzzy search via Levenshtein edit distance,
// and a hybrid mode that interleaves both. These form the lexical
// fallback path used when no embedding is available for a query.
package corpus
