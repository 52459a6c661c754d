package repository

// Package repository contains data access layer abstractions for the three
// record collections (users, documents, folders). Implementations live in
// subpackages (e.g., postgres) inside this directory and hold no business
// logic; callers are responsible for cross-collection consistency.
