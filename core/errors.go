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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates a CorpusEntry failed validation.
	ErrInvalidEntry = errors.New("invalid corpus entry")

	// ErrEmptyCampaign indicates the Campaign field is empty.
	ErrEmptyCampaign = errors.New("campaign name cannot be empty")

	// ErrEmptyBrand indicates the Brand field is empty.
	ErrEmptyBrand = errors.New("brand cannot be empty")

	// ErrEmptyHeadline indicates the Headline field is empty.
	ErrEmptyHeadline = errors.New("headline cannot be empty")

	// ErrNoRhetoricalDevices indicates the rhetorical device list is empty.
	ErrNoRhetoricalDevices = errors.New("at least one rhetorical device is required")

	// ErrInvalidYear indicates a non-positive publication year.
	ErrInvalidYear = errors.New("year must be positive")
)
