// Package i18n holds the locale list and the embedded UI dictionaries.
//
// Lookups never fail: an unknown locale falls back to English and a
// missing key is returned as-is, so a partially translated dictionary
// still renders.
package i18n
