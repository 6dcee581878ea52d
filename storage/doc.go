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

// Package storage provides the storage abstraction layer for matchwell.
//
// The matching engine reads profiles through ProfileStore and never writes.
// Seeding and backfill tooling use the wider ProfileRepository. Presence and
// dismissed recommendations have their own small interfaces so they can live
// in a different backend from the profiles.
//
// # Constructor Return Type Pattern
//
// Accessors that hand repositories to callers return the interfaces
// defined here:
//
//	store, err := badger.OpenStore(path)
//	profiles := store.Profiles() // storage.ProfileRepository
//
// Constructors internal to a backend (NewProfileRepository, NewPresenceTracker)
// may return concrete types since they're wired together inside the
// implementation package.
//
// # Predicates
//
// Retrieval is expressed as a Predicate: a conjunction of typed clauses
// (IDNot, GenderIs, AgeRange, ContainsAny, EqualsFold, AnyOf). Backends
// either evaluate clauses in process with Matches (badger) or compile them
// into their own query language (postgres). Results are always ordered by
// profile ID.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
