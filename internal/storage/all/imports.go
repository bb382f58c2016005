// Package all wires the built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories and DDL bootstrappers with the storage package. A binary
// that wants only one backend can blank-import that backend package instead.
//
// Importing this package makes the following storage kinds available:
//
//   - "sqlite"   (spedetl/internal/storage/sqlite)
//   - "postgres" (spedetl/internal/storage/postgres)
package all

import (
	_ "spedetl/internal/storage/postgres"
	_ "spedetl/internal/storage/sqlite"
)
