// Package ledgerboard provides the building blocks of an operator
// dashboard over a remote double-entry ledger service, consumed through
// its HTTP query API.
//
// The core functionalities include:
//   - Ledger Client: typed accessors for ledger metadata, accounts,
//     transactions and assets, mapping the API's loosely-typed payloads to
//     explicit structs and degrading gracefully on partial failure.
//   - Aggregation: one code path for ledger-scoped and all-ledger views,
//     fanning a fetch out across every known ledger, tagging each record
//     with its origin and isolating per-ledger failures.
//   - Navigation: an explicit session state machine owning the current
//     view, the drill-down selections and the table filters.
//   - Posting graphs: a transaction's postings as a directed multigraph
//     for visualization.
//   - Asset aggregation: the asset universe with per-asset supply and
//     holders, computed by scanning every ledger's balances.
//
// This package serves as the foundational logic for the `lbd` command-line
// tool; rendering lives in the renderer package and stays out of here.
package ledgerboard
