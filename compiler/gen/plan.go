package gen

import (
	"github.com/turner-townsend/genyrator/dialect/sql"
)

// WritePlan separates the columns of an entity by write phase. Columns of
// deferred relationships are set after the record exists.
type WritePlan struct {
	Entity *Entity
	// Key addresses the record in the second phase: the identifier, or the
	// primary key when no identifier is declared.
	Key string
	// Create lists the columns written when the record is created.
	Create []string
	// Deferred lists the relationships written in the second phase.
	Deferred []*Relationship
}

// WritePlan returns the write plan of the entity.
func (e *Entity) WritePlan() *WritePlan {
	p := &WritePlan{Entity: e, Deferred: e.Deferred()}
	switch {
	case e.Identifier() != nil:
		p.Key = e.Identifier().Name
	case e.PrimaryKey() != nil:
		p.Key = e.PrimaryKey().Name
	}
	deferred := make(map[string]bool, len(p.Deferred))
	for _, r := range p.Deferred {
		deferred[r.SourceForeignKeyColumn()] = true
	}
	for _, f := range e.Fields {
		if !deferred[f.Name] {
			p.Create = append(p.Create, f.Name)
		}
	}
	return p
}

// WritePlan returns the write plan of the named entity.
func (g *Graph) WritePlan(name string) (*WritePlan, error) {
	e, ok := g.Entity(name)
	if !ok {
		return nil, NewSchemaError(name, "", "unknown entity", nil)
	}
	return e.WritePlan(), nil
}

// DeferredColumns returns the columns written in the second phase.
func (p *WritePlan) DeferredColumns() []string {
	cols := make([]string, 0, len(p.Deferred))
	for _, r := range p.Deferred {
		cols = append(cols, r.SourceForeignKeyColumn())
	}
	return cols
}

// SQL returns the plan executed by dialect/sql.Writer.
func (p *WritePlan) SQL() sql.Plan {
	return sql.Plan{
		Entity:   p.Entity.Name,
		Table:    p.Entity.Table(),
		Key:      p.Key,
		Columns:  p.Create,
		Deferred: p.DeferredColumns(),
	}
}
