/*
Package observability provides lifecycle hooks for auditing simulations and
generations, plus ready-made hook sets that log through slog and record
Prometheus metrics.
*/
package observability
