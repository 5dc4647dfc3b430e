// Package models defines the persisted domain models for the debt ledger.
//
// # Models
//
//   - User: A registered account that can own debts and be named as a counterparty
//   - Debt: One hutang (owed) or piutang (receivable) record from its owner's point of view
//
// # Design Principles
//
// 1. **Owner-scoped records**: every Debt belongs to exactly one User (UserID)
// 2. **Optional counterparty**: OtherUserID links a registered user; Name always
// carries a display name so debts with outsiders can be tracked too
// 3. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 4. **Exact money**: amounts are decimals, never floats
//
// # Settlement
//
// Only debts that name a registered counterparty take part in settlement
// planning. Each such record is seen from both sides: the owner's hutang is
// the counterparty's piutang and vice versa.
package models
