package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/turner-townsend/genyrator/compiler/load"
	"github.com/turner-townsend/genyrator/schema/edge"
)

// Graph holds the validated entities of a project.
type Graph struct {
	*Config
	// Entities in declaration order.
	Entities []*Entity

	byName map[string]*Entity
}

// NewGraph validates the loaded schemas and resolves the relationships
// between them. Every relationship goes through NewRelationship.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	g := &Graph{Config: c, byName: make(map[string]*Entity, len(schemas))}
	conv := c.Convention
	for _, s := range schemas {
		if s == nil {
			return nil, NewSchemaError("", "", "nil schema", nil)
		}
		e := newEntity(conv, s)
		if _, ok := g.byName[e.Name]; ok {
			return nil, NewSchemaError(e.Name, "", "duplicate entity", nil)
		}
		if err := checkFields(e); err != nil {
			return nil, err
		}
		for _, d := range s.Relationships {
			r, err := NewRelationship(conv, d, append(c.relationshipOptions(), Owner(e.Name))...)
			if err != nil {
				return nil, err
			}
			if _, ok := e.Relationship(r.PropertyName()); ok {
				return nil, NewRelationshipError(e.Name, r.PropertyName(), ErrInvalidRelationship, "duplicate property name")
			}
			if _, ok := e.Field(r.PropertyName()); ok {
				return nil, NewRelationshipError(e.Name, r.PropertyName(), ErrInvalidRelationship, "property name collides with a field")
			}
			e.Relationships = append(e.Relationships, r)
		}
		g.byName[e.Name] = e
		g.Entities = append(g.Entities, e)
	}
	for _, e := range g.Entities {
		for _, r := range e.Relationships {
			if err := g.resolve(e, r); err != nil {
				return nil, err
			}
		}
	}
	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// Entity returns the entity with the given type name.
func (g *Graph) Entity(name string) (*Entity, bool) {
	e, ok := g.byName[g.Convention.TypeName(name)]
	return e, ok
}

func checkFields(e *Entity) error {
	var ident, pk int
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if !f.Type.Valid() {
			return NewSchemaError(e.Name, f.Name, "invalid type", nil)
		}
		if seen[f.Name] {
			return NewSchemaError(e.Name, f.Name, "duplicate field", nil)
		}
		seen[f.Name] = true
		if f.Identifier {
			ident++
			if f.Nullable {
				return NewSchemaError(e.Name, f.Name, "identifier cannot be nullable", nil)
			}
		}
		if f.PrimaryKey {
			pk++
		}
	}
	if ident > 1 {
		return NewSchemaError(e.Name, "", "multiple identifier fields", nil)
	}
	if pk > 1 {
		return NewSchemaError(e.Name, "", "multiple primary key fields", nil)
	}
	return nil
}

// resolve links r to its target and checks the columns it references.
func (g *Graph) resolve(owner *Entity, r *Relationship) error {
	target, ok := g.byName[g.Convention.TypeName(r.TargetEntity())]
	if !ok {
		return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
			fmt.Sprintf("unknown target entity %q", r.TargetEntity()))
	}
	r.target = target
	if col := r.SourceForeignKeyColumn(); col != "" {
		if _, ok := owner.Field(col); !ok {
			return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
				fmt.Sprintf("source foreign key column %q is not a field of %s", col, owner.Name))
		}
	}
	if col := r.TargetForeignKeyColumn(); col != "" {
		if _, ok := target.Field(col); !ok {
			return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
				fmt.Sprintf("target foreign key column %q is not a field of %s", col, target.Name))
		}
	}
	if _, ok := r.Route().(ViaJoinTable); ok && target == owner && r.SecondaryJoinColumn() == "" {
		return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
			"self-referential join table relationship requires a secondary join column")
	}
	if r.DeferredUpdate() {
		if r.SourceForeignKeyColumn() == "" {
			return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
				"deferred update requires a source foreign key column")
		}
		if owner.Identifier() == nil && owner.PrimaryKey() == nil {
			return NewRelationshipError(owner.Name, r.PropertyName(), ErrInvalidRelationship,
				"deferred update requires an identifier or primary key to address the record")
		}
	}
	return nil
}

// checkCycles rejects entities that reference each other through to-one
// foreign keys when none of the relationships in the cycle is deferred.
// Such records cannot be inserted in any order.
func (g *Graph) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*Entity]int, len(g.Entities))
	var path []string
	var visit func(e *Entity) error
	visit = func(e *Entity) error {
		state[e] = visiting
		path = append(path, e.Name)
		for _, r := range e.Relationships {
			if r.Cardinality() != edge.ToOne || r.SourceForeignKeyColumn() == "" || r.DeferredUpdate() {
				continue
			}
			t := r.Target()
			if t == e {
				continue
			}
			switch state[t] {
			case visiting:
				i := slices.Index(path, t.Name)
				cycle := append(slices.Clone(path[i:]), t.Name)
				return NewSchemaError(e.Name, "", fmt.Sprintf(
					"foreign key cycle %s: declare one of the relationships with post_update", strings.Join(cycle, " -> ")), nil)
			case unvisited:
				if err := visit(t); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		state[e] = done
		return nil
	}
	for _, e := range g.Entities {
		if state[e] == unvisited {
			if err := visit(e); err != nil {
				return err
			}
		}
	}
	return nil
}
