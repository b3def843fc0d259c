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


package core

import "fmt"

// ValidateEntry validates a CorpusEntry according to domain rules.
//
// Validation rules:
//   - Campaign, Brand, and Headline must not be empty
//   - RhetoricalDevices must contain at least one device
//   - Year must be positive
//
// NOT validated (optional, defaulted at load):
//   - Category, Tags, QualityScore
func ValidateEntry(entry *CorpusEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Campaign == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyCampaign)
	}

	if entry.Brand == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyBrand)
	}

	if entry.Headline == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyHeadline)
	}

	if len(entry.RhetoricalDevices) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrNoRhetoricalDevices)
	}

	if entry.Year <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrInvalidYear)
	}

	return nil
}
