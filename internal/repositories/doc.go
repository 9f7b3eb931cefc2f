// Package repositories provides the SQLite persistence layer.
//
// [KVRepository] is the durable key-value string store backing the session
// mirror (it satisfies session.Storage). [ExportRepository] keeps assembled
// schedule exports so they can be listed and re-read without hitting the API.
package repositories
