// Copyright 2025 Poiesic Systems
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


package catalog

import "errors"

var (
	// ErrNotFound indicates that no college with the given ID exists.
	ErrNotFound = errors.New("college not found")

	// ErrEmptyCatalog indicates that the data file contained no records.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrDuplicateCollegeID indicates two records share a college ID.
	ErrDuplicateCollegeID = errors.New("duplicate college id")
)
