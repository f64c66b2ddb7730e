// Package ports declares the driven-side interfaces of the engine.
//
// Adapters (memory, redis, http) implement these interfaces; the engine core
// depends only on the contracts defined here.
package ports
