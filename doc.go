// Package cryptofolio tracks the value of a personal crypto portfolio and the
// zakat obligation attached to it.
//
// The core functionalities include:
//   - Aggregation: collecting the USD value of every tracked asset from
//     independent sources, tolerating the failure of any of them.
//   - History: an append-only, human-readable CSV log of valuations, one batch
//     of records per aggregation, from which every aggregate is re-derived.
//   - Evolution: the change of each asset over the trailing 24 hours.
//   - Nisab tracking: the most recent moment the portfolio was worth less than
//     the nisab, and the number of whole days elapsed since then.
//   - Zakat: the 2.5% levy and whether it is due today.
//
// This package serves as the foundational logic for the `cfo` command-line
// tool. Sources, notification and rendering live in their own packages.
package cryptofolio
