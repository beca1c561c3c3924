// Package ozonkw collects search-analytics records from the Ozon seller
// analytics area by driving a single authenticated, JavaScript-rendering
// browser session and recursively discovering related search queries to
// crawl one level deep.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, template/).
package ozonkw
