// Package kernel provides value objects shared by every aggregate of the delivery system.
//
// The package includes:
//   - Address: a street address with city and postal code, validated on construction
//   - Date: a calendar date persisted and serialised as yyyy-MM-dd
//   - text helpers enforcing the required/size rules used by every payload
//
// Value objects are immutable. Their zero values fail Validate, so they must be created
// through their constructors.
package kernel
