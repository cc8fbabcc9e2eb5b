package gen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dave/jennifer/jen"

	"github.com/turner-townsend/genyrator/schema/field"
)

// Import paths referenced by generated code.
const (
	modulePath  = "github.com/turner-townsend/genyrator"
	namingPkg   = modulePath + "/naming"
	documentPkg = modulePath + "/document"
	sqlPkg      = modulePath + "/dialect/sql"
	uuidPkg     = "github.com/google/uuid"
)

const (
	graphFileName = "genyrator.go"
	receiver      = "x"
)

// Generator generates the record package of a graph: one file per entity
// and one file for the graph.
type Generator struct {
	graph *Graph

	mu      sync.Mutex
	metrics *WriterMetrics
}

// NewGenerator creates a generator for g.
func NewGenerator(g *Graph) *Generator {
	return &Generator{graph: g, metrics: &WriterMetrics{}}
}

// Graph returns the generated graph.
func (g *Generator) Graph() *Graph { return g.graph }

// Metrics returns the generation metrics.
func (g *Generator) Metrics() WriterMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.metrics
}

// tasks returns the files to generate, entity files first.
func (g *Generator) tasks() []fileTask {
	tasks := make([]fileTask, 0, len(g.graph.Entities)+1)
	for _, e := range g.graph.Entities {
		tasks = append(tasks, fileTask{
			name:   fileName(e),
			phase:  "entity",
			render: func() *jen.File { return g.entityFile(e) },
		})
	}
	tasks = append(tasks, fileTask{
		name:   graphFileName,
		phase:  "graph",
		render: g.graphFile,
	})
	return tasks
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.graph.PackageName())
	f.HeaderComment(strings.TrimPrefix(g.graph.header(), "// "))
	return f
}

// graphFile renders the declarations shared by every entity.
func (g *Generator) graphFile() *jen.File {
	f := g.newFile()
	f.Comment("Convention translates between column names and document keys.")
	f.Var().Id("Convention").Op("=").Qual(namingPkg, "MustNew").Call(jen.LitRune(rune(g.graph.Convention.Delimiter())))

	f.Comment("Entities lists the entity names in declaration order.")
	names := make([]jen.Code, len(g.graph.Entities))
	for i, e := range g.graph.Entities {
		names[i] = jen.Lit(e.Name)
	}
	f.Var().Id("Entities").Op("=").Index().String().Values(names...)

	f.Comment("WritePlans indexes the write plans by entity name.")
	f.Var().Id("WritePlans").Op("=").Map(jen.String()).Qual(sqlPkg, "Plan").Values(jen.DictFunc(func(d jen.Dict) {
		for _, e := range g.graph.Entities {
			d[jen.Lit(e.Name)] = jen.Id(e.GoName() + "WritePlan")
		}
	}))

	f.Comment("ToList converts records to a list response: {\"data\": [...]}.")
	f.Func().Id("ToList").Params(
		jen.Id("records").Any(),
		jen.Id("paths").Op("...").String(),
	).Params(jen.Map(jen.String()).Any(), jen.Error()).Block(
		jen.Return(jen.Qual(documentPkg, "ToList").Call(jen.Id("Convention"), jen.Id("records"), jen.Id("paths").Op("..."))),
	)
	return f
}

// entityFile renders the record type of e and its helpers.
func (g *Generator) entityFile(e *Entity) *jen.File {
	f := g.newFile()
	name := e.GoName()
	plan := e.WritePlan()

	f.Commentf("%sTable is the table holding %s records.", name, e.Name)
	f.Const().Id(name + "Table").Op("=").Lit(e.Table())

	if len(e.Relationships) > 0 {
		f.Commentf("Expand paths of %s documents.", e.Name)
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, r := range e.Relationships {
				grp.Id(name + "Path" + goName(r.PropertyName())).Op("=").Lit(r.PropertyName())
			}
		})
	}

	f.Commentf("%s is a record of the %s entity.", name, e.Name)
	f.Type().Id(name).StructFunc(func(grp *jen.Group) {
		for _, fd := range e.Fields {
			tag := fd.Name
			if fd.PrimaryKey {
				tag += ",pk"
			}
			s := grp.Id(fd.GoName()).Add(fieldType(fd)).Tag(map[string]string{
				"db":        fd.Name,
				"genyrator": tag,
			})
			if fd.Comment != "" {
				s.Comment(fd.Comment)
			}
		}
		if len(e.Relationships) > 0 {
			grp.Line()
		}
		for _, r := range e.Relationships {
			typ := jen.Op("*").Id(r.Target().GoName())
			if r.ToMany() {
				typ = jen.Index().Op("*").Id(r.Target().GoName())
			}
			grp.Id(goName(r.PropertyName())).Add(typ).Tag(map[string]string{
				"genyrator": r.PropertyName(),
			}).Comment(describe(r))
		}
	})

	f.Commentf("%sWritePlan separates the columns of %s by write phase.", name, e.Name)
	f.Var().Id(name+"WritePlan").Op("=").Qual(sqlPkg, "Plan").Values(jen.Dict{
		jen.Id("Entity"):   jen.Lit(e.Name),
		jen.Id("Table"):    jen.Id(name + "Table"),
		jen.Id("Key"):      jen.Lit(plan.Key),
		jen.Id("Columns"):  stringSlice(plan.Create),
		jen.Id("Deferred"): stringSlice(plan.DeferredColumns()),
	})

	recv := jen.Id(receiver).Op("*").Id(name)
	f.Comment("Document converts the record to a document with external keys.")
	if len(e.Relationships) > 0 {
		f.Comment("paths is a chain of relationships to expand, e.g. " + name + "Path" + goName(e.Relationships[0].PropertyName()) + ".")
	}
	f.Func().Params(recv.Clone()).Id("Document").Params(jen.Id("paths").Op("...").String()).
		Params(jen.Map(jen.String()).Any(), jen.Error()).Block(
		jen.Return(jen.Qual(documentPkg, "ToDocument").Call(jen.Id("Convention"), jen.Id(receiver), jen.Id("paths").Op("..."))),
	)

	f.Comment("Values returns the column values of the record.")
	f.Func().Params(recv.Clone()).Id("Values").Params().
		Params(jen.Map(jen.String()).Any(), jen.Error()).Block(
		jen.Return(jen.Qual(documentPkg, "Columns").Call(jen.Id("Convention"), jen.Id(receiver))),
	)

	f.Commentf("Create writes the record with %sWritePlan.", name)
	f.Func().Params(recv.Clone()).Id("Create").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("writer").Op("*").Qual(sqlPkg, "Writer"),
	).Error().Block(
		jen.List(jen.Id("values"), jen.Err()).Op(":=").Id(receiver).Dot("Values").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Return(jen.Id("writer").Dot("Create").Call(jen.Id("ctx"), jen.Id(name+"WritePlan"), jen.Id("values"))),
	)
	return f
}

// fieldType returns the Go type of a column. Nullable columns are
// pointers, except user JSON which is nil when absent.
func fieldType(fd *Field) jen.Code {
	var t *jen.Statement
	switch fd.Type {
	case field.TypeBool:
		t = jen.Bool()
	case field.TypeInt:
		t = jen.Int()
	case field.TypeInt64:
		t = jen.Int64()
	case field.TypeFloat:
		t = jen.Float64()
	case field.TypeString, field.TypeText:
		t = jen.String()
	case field.TypeTime:
		t = jen.Qual("time", "Time")
	case field.TypeDate:
		t = jen.Qual(namingPkg, "Date")
	case field.TypeUUID:
		t = jen.Qual(uuidPkg, "UUID")
	case field.TypeJSON:
		return jen.Qual("encoding/json", "RawMessage")
	default:
		t = jen.Any()
	}
	if fd.Nullable {
		return jen.Op("*").Add(t)
	}
	return t
}

// stringSlice renders a string slice literal, or nil when empty.
func stringSlice(values []string) jen.Code {
	if len(values) == 0 {
		return jen.Nil()
	}
	lits := make([]jen.Code, len(values))
	for i, v := range values {
		lits[i] = jen.Lit(v)
	}
	return jen.Index().String().Values(lits...)
}

// describe returns the comment of a relationship member.
func describe(r *Relationship) string {
	var b strings.Builder
	b.WriteString(r.Cardinality().String())
	b.WriteString(" ")
	b.WriteString(r.TargetEntity())
	switch route := r.Route().(type) {
	case Direct:
		switch {
		case r.SourceForeignKeyColumn() != "":
			fmt.Fprintf(&b, " on %s", r.SourceForeignKeyColumn())
		case r.TargetForeignKeyColumn() != "":
			fmt.Fprintf(&b, " on %s.%s", r.Target().Table(), r.TargetForeignKeyColumn())
		case route.TargetIdentifierColumn != "":
			fmt.Fprintf(&b, " on %s", route.TargetIdentifierColumn)
		}
	case ViaJoinTable:
		fmt.Fprintf(&b, " via %s", route.JoinTable)
	}
	if r.DeferredUpdate() {
		b.WriteString(", deferred")
	}
	if r.Lazy() {
		b.WriteString(", lazy")
	}
	return b.String()
}
