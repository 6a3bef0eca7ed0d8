// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, tasks, the authenticated principal
// and the monthly task statistics. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
