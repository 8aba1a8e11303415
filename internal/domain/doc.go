// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/user, domain/role,
// domain/project, domain/task). This root package holds sentinel errors and
// validation types shared across all entities.
package domain
