package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turner-townsend/genyrator/compiler/gen"
)

func newDescribeCmd(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Validate a schema directory and print its entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			graph, err := g.graph(gen.WithLogger(g.logger(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			if asJSON {
				return describeJSON(cmd.OutOrStdout(), graph)
			}
			return describeText(cmd.OutOrStdout(), graph)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the description as JSON")
	return cmd
}

func describeText(w io.Writer, g *gen.Graph) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, e := range g.Entities {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		p := e.WritePlan()
		fmt.Fprintf(tw, "%s\ttable %s\tkey %s\n", e.Name, e.Table(), p.Key)
		for _, f := range e.Fields {
			var attrs []string
			if f.PrimaryKey {
				attrs = append(attrs, "pk")
			}
			if f.Identifier {
				attrs = append(attrs, "identifier")
			}
			if f.Nullable {
				attrs = append(attrs, "nullable")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.JSONName, f.Type, strings.Join(attrs, ","))
		}
		for _, r := range e.Relationships {
			fmt.Fprintf(tw, "  %s\t%s\t%s %s\t%s\n", r.PropertyName(), r.JSONPropertyName(), r.Cardinality(), r.TargetEntity(), route(r))
		}
		if deferred := p.DeferredColumns(); len(deferred) > 0 {
			fmt.Fprintf(tw, "  deferred\t%s\n", strings.Join(deferred, ","))
		}
	}
	return tw.Flush()
}

// route describes how a relationship is joined.
func route(r *gen.Relationship) string {
	var parts []string
	switch rt := r.Route().(type) {
	case gen.Direct:
		switch {
		case r.SourceForeignKeyColumn() != "":
			parts = append(parts, "source fk "+r.SourceForeignKeyColumn())
		case r.TargetForeignKeyColumn() != "":
			parts = append(parts, "target fk "+r.TargetForeignKeyColumn())
		case rt.TargetIdentifierColumn != "":
			parts = append(parts, "target identifier "+rt.TargetIdentifierColumn)
		}
	case gen.ViaJoinTable:
		parts = append(parts, "join table "+rt.JoinTable+" ("+rt.JoinTableTypeName+")")
	}
	parts = append(parts, "key "+r.KeyAliasInJSON())
	if r.CascadeDelete() != gen.CascadeNone {
		parts = append(parts, "cascade delete "+r.CascadeDelete().String())
	}
	if r.Lazy() {
		parts = append(parts, "lazy")
	}
	if r.DeferredUpdate() {
		parts = append(parts, "deferred")
	}
	return strings.Join(parts, ", ")
}

type entityJSON struct {
	Name          string             `json:"name"`
	Table         string             `json:"table"`
	Key           string             `json:"key,omitempty"`
	Fields        []fieldJSON        `json:"fields"`
	Relationships []relationshipJSON `json:"relationships,omitempty"`
	Create        []string           `json:"create"`
	Deferred      []string           `json:"deferred,omitempty"`
}

type fieldJSON struct {
	Name     string `json:"name"`
	JSONName string `json:"jsonName"`
	Type     string `json:"type"`
}

type relationshipJSON struct {
	Property       string `json:"property"`
	JSONProperty   string `json:"jsonProperty"`
	KeyAlias       string `json:"keyAlias"`
	Target         string `json:"target"`
	Cardinality    string `json:"cardinality"`
	Route          string `json:"route"`
	JoinTableType  string `json:"joinTableType,omitempty"`
	CascadeDelete  string `json:"cascadeDelete"`
	DeferredUpdate bool   `json:"deferredUpdate,omitempty"`
}

func describeJSON(w io.Writer, g *gen.Graph) error {
	out := make([]entityJSON, 0, len(g.Entities))
	for _, e := range g.Entities {
		p := e.WritePlan()
		ej := entityJSON{
			Name:     e.Name,
			Table:    e.Table(),
			Key:      p.Key,
			Create:   p.Create,
			Deferred: p.DeferredColumns(),
		}
		for _, f := range e.Fields {
			ej.Fields = append(ej.Fields, fieldJSON{Name: f.Name, JSONName: f.JSONName, Type: f.Type.String()})
		}
		for _, r := range e.Relationships {
			rj := relationshipJSON{
				Property:       r.PropertyName(),
				JSONProperty:   r.JSONPropertyName(),
				KeyAlias:       r.KeyAliasInJSON(),
				Target:         r.TargetEntity(),
				Cardinality:    r.Cardinality().String(),
				Route:          "direct",
				CascadeDelete:  r.CascadeDelete().String(),
				DeferredUpdate: r.DeferredUpdate(),
			}
			if jt, ok := r.Route().(gen.ViaJoinTable); ok {
				rj.Route = "join_table"
				rj.JoinTableType = jt.JoinTableTypeName
			}
			ej.Relationships = append(ej.Relationships, rj)
		}
		out = append(out, ej)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
