// Package newscrawl harvests structured records from news-article URLs.
// It combines readability extraction, structural DOM selectors, an author
// recovery heuristic and headless-browser comment scraping into one
// normalized record per URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, goquery/, rod/).
package newscrawl
