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


// Package embedding maintains the corpus embedding cache.
//
// Each corpus entry has at most one cached vector, keyed by entry ID and
// tagged with the exact text that was embedded. A record whose text no
// longer matches the entry is stale and gets recomputed, so edits to the
// corpus never serve vectors for old copy. Computation is rate limited
// and tolerates per-entry embedder failures; whatever was embedded
// successfully is snapshotted to the backing store.
package embedding
