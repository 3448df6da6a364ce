// Package models defines the core domain types for healthlog.
//
// The following models are persisted:
//   - User: a registered account (Credential store)
//   - WeightEntry: body-weight log, sorted ascending by date
//   - NutritionEntry: food log, sorted descending by date
//   - DietEntry: legacy food log kept for old clients, own namespace
//   - Goals: per-user singleton nutrition targets
//
// Entry IDs are int64 values unique within one user's collection only;
// they are not global identifiers. Relationships use ID strings instead of
// pointers to avoid circular references.
package models
