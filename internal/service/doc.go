// Package service contains the application use cases: authentication and
// profile management, task management with role-scoped statistics, and
// user administration.
//
// Services depend on the store interfaces and on small ports defined here
// (Mailer, AvatarStorage), never on concrete infrastructure. Expected
// conditions are reported as sentinel errors (this package's credential
// errors, store.ErrUserNotFound, domain validation errors) so the API layer
// can map them with errors.Is. Unexpected failures are wrapped in ServiceError.
package service
