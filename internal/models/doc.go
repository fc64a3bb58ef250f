// Package models defines the domain models for the boat finance service.
//
//   - FinanceCalculation: a computed loan, with its schedule, sharing state
//     and owner-only metadata
//   - PaymentScheduleItem: one row of an amortization schedule
//   - User: a registered account; its ID is the owner of saved calculations
//
// Relationships use ID strings rather than pointers. ListingID refers to a
// marketplace listing owned by another system and is stored as-is.
package models
