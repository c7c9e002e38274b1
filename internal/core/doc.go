// Package core provides the validation, import and report pipeline.
//
// This package holds all domain logic independent of any transport or
// storage engine. It can be used by the HTTP server, the CLI, or tests
// with an in-memory store.
//
// # Architecture
//
//   - Validator: a declarative [Schema] per entity type, made of [FieldSpec]
//     entries (required, length, pattern, enum, date, email) and named
//     cross-field [Rule]s. Validation is a pure predicate.
//   - Importers: [ImportProjects] (XML) and [ImportEmployees] (JSON) decode a
//     batch, validate each candidate, prune invalid children, and persist
//     every accepted entity with exactly one store write.
//   - Reports: [ExportProjectsWithTasks] and [ExportBusiestEmployees] read the
//     store, filter, project, sort and limit, then render XML, JSON or YAML.
//   - Service: binds a [Store] with configured timeouts, report limits and
//     logging, and bounds concurrent imports with an [ImportLimiter].
//
// # Import Log
//
// Every candidate yields one line, in input order. A rejected project,
// employee, task or task link yields [ErrorMessage]; an accepted project or
// employee yields a success line with its accepted child count. Rejected
// tasks are logged before their project's success line.
//
// # Error Handling
//
// Record-level failures never abort a batch and carry no reason in the log.
// Only a batch that cannot be decoded ([ErrMalformedBatch]) or a failed store
// call aborts the whole call. [MapError] turns those into coded user messages.
//
// # Dates
//
// Input dates use [DateLayout] (dd/MM/yyyy). Report dates use
// [ShortDateLayout] (MM/dd/yyyy). A project without a due date places no
// upper bound on its tasks.
package core
