// Package mixin provides reusable parts of entity schemas.
//
// A mixin is a set of fields and relationships merged into every entity that
// lists it, ahead of the entity's own declarations:
//
//	func (Book) Mixin() []genyrator.Mixin {
//		return []genyrator.Mixin{
//			mixin.ID{},   // id, the storage primary key
//			mixin.Time{}, // created, updated
//		}
//	}
//
// Custom mixins embed Schema and override what they need.
package mixin
