// Package services holds the rulebook's behaviour. Each service works
// through driven ports only; storage, PDF rendering and file watching are
// adapters chosen at startup.
package services
