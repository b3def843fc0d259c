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


// Package rank scores corpus entries against a query vector and selects
// diverse result sets.
//
// Ranking is a full scan: cosine similarity between the query vector and
// every embedded entry, keeping the top K. Selection then re-ranks the
// pool greedily, penalizing candidates that repeat the brand, era, or
// rhetorical devices of entries already chosen, so a caller asking for
// three examples gets three genuinely different ones.
package rank
