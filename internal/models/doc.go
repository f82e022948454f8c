// Package models defines the core domain models for LogFlow romaneios.
//
// # Models
//
//   - Romaneio: a packing list header (number, title, type, status)
//   - Item: one line of a packing list, shared by all three variants
//
// Items come in three kinds (manual, simplified, automated). They share one
// struct; the kind decides which magnitudes are required (see
// ItemKind.RequiredFields).
//
// Derived values such as totals live in package calculator and are never
// stored on these models.
package models
