// Package portfolio reconstructs an investor's holdings from raw broker
// trade history and projects their future value under uncertainty.
//
// The core functionalities include:
//   - Normalization: parsing heterogeneous money/quantity strings, resolving
//     broker tickers to canonical market symbols, and classifying free-text
//     transaction types into sides (buy, sell, dividend, fee, tax, ...).
//   - Reconciliation: folding a chronologically ordered Ledger of
//     Transactions into a Book of average-cost Positions with realized P&L,
//     per-currency dividend totals and a classified cash-flow table.
//   - Valuation: projecting a Book against a point-in-time Pricing (quotes
//     plus a single FX rate, captured together) into a Snapshot with market
//     values, unrealized P&L and base-currency totals.
//   - Risk analysis: deriving an annualized risk profile (volatility, Sharpe
//     ratio, maximum drawdown) from Snapshot weights and a historical price
//     Panel.
//   - Projection: a seedable geometric-Brownian Monte Carlo simulation of
//     forward portfolio value paths from the daily-return series.
//
// The core performs no I/O. Market data, FX rates and ticker metadata come
// from the yahoo subpackage (or any other collaborator) strictly before
// reconciliation and analysis begin. Malformed inputs never abort a
// computation: they surface as explicit missing values or as structured
// Warnings attached to the result, so callers can distinguish "no profit"
// from "no data".
//
// This package serves as the foundational logic for the `pfs` command-line
// tool.
package portfolio
