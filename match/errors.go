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

package match

import "errors"

var (
	// ErrProfileStoreRequired is returned when a profile store is not provided.
	ErrProfileStoreRequired = errors.New("profile store required")

	// ErrSeekerNotFound is returned when the seeker profile does not exist.
	ErrSeekerNotFound = errors.New("seeker not found")

	// ErrRetrievalFailed wraps profile store failures during candidate retrieval.
	ErrRetrievalFailed = errors.New("candidate retrieval failed")

	// ErrInvalidPoolSize is returned for a non-positive worker pool size.
	ErrInvalidPoolSize = errors.New("pool size must be positive")

	// ErrInvalidTimeout is returned for a non-positive re-rank timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
