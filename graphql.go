package calchub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
)

// initSchema builds the GraphQL schema: queries over the evaluation
// pipeline and the recorded history.
func (s *Server) initSchema() {
	evaluationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Evaluation",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"expression": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"result":     &graphql.Field{Type: graphql.String},
			"value":      &graphql.Field{Type: graphql.Float},
			"error":      &graphql.Field{Type: graphql.String},
			"source":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ev := p.Source.(*Evaluation)
					return ev.CreatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"evaluate": &graphql.Field{
				Type: graphql.NewNonNull(evaluationType),
				Args: graphql.FieldConfigArgument{
					"expression": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					expression, _ := p.Args["expression"].(string)
					return s.evaluate(p.Context, expression, "graphql"), nil
				},
			},
			"render": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"expression": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					expression, _ := p.Args["expression"].(string)
					parser, err := NewParser(expression)
					if err != nil {
						return nil, err
					}
					ast, err := parser.Parse()
					if err != nil {
						return nil, err
					}
					return Render(ast), nil
				},
			},
			"history": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(evaluationType)),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit, _ := p.Args["limit"].(int)
					return s.store.Recent(limit), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		panic(fmt.Sprintf("failed to create graphql schema: %v", err))
	}
	s.schema = schema
}

// handleGraphQL executes a GraphQL query.
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query         string                 `json:"query"`
		Variables     map[string]interface{} `json:"variables"`
		OperationName string                 `json:"operationName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	writeJSON(w, http.StatusOK, result)
}
