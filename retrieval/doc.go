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


// Package retrieval serves ranked, diverse corpus examples for a query.
//
// A retrieval first checks the session cache, keyed by a hash of the
// normalized query text. On a miss it embeds the query, ranks the corpus
// by cosine similarity, and caches the top candidates; if the embedder
// fails it builds the pool from lexical search instead. Repeated calls
// for the same query rotate through disjoint slices of the cached pool
// for the first few serves, then switch permanently to greedy diversity
// selection. Retrieval never returns an error to the caller; the worst
// case is fewer or less relevant results.
package retrieval
