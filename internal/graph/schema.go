package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"eventbook/internal/resolvers"
	"eventbook/pkg/models"
)

// NewSchema builds the executable schema. Relation fields (event.creator,
// user.createdEvents) carry their own resolve functions, so the backing
// documents are only fetched when a query actually selects them.
func NewSchema(r *resolvers.Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.Field{
				Type: graphql.String,
			},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// The creator and createdEvents fields are mutually recursive, so they
	// are attached after both object types exist.
	eventType.AddFieldConfig("creator", &graphql.Field{
		Type: graphql.NewNonNull(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			event, err := eventSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.EventCreator(p.Context, event.CreatorID)
		},
	})
	userType.AddFieldConfig("createdEvents", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.UserCreatedEvents(p.Context, user.CreatedEventIDs)
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"userId":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"token":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tokenExpiration": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	eventInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Events(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, ok := p.Args["userInput"].(map[string]interface{})
					if !ok {
						return nil, fmt.Errorf("missing userInput argument")
					}
					email, _ := input["email"].(string)
					password, _ := input["password"].(string)
					payload, err := r.CreateUser(p.Context, email, password)
					if err != nil {
						return nil, err
					}
					return payload, nil
				},
			},
			"createEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(eventInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, ok := p.Args["eventInput"].(map[string]interface{})
					if !ok {
						return nil, fmt.Errorf("missing eventInput argument")
					}
					input := models.EventInput{}
					input.Title, _ = raw["title"].(string)
					input.Description, _ = raw["description"].(string)
					input.Price, _ = raw["price"].(float64)
					input.Date, _ = raw["date"].(string)
					payload, err := r.CreateEvent(p.Context, input)
					if err != nil {
						return nil, err
					}
					return payload, nil
				},
			},
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					payload, err := r.Login(p.Context, email, password)
					if err != nil {
						return nil, err
					}
					return payload, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func userSource(src interface{}) (*models.UserPayload, error) {
	if user, ok := src.(*models.UserPayload); ok {
		return user, nil
	}
	return nil, fmt.Errorf("unexpected source type %T for User field", src)
}

func eventSource(src interface{}) (*models.EventPayload, error) {
	if event, ok := src.(*models.EventPayload); ok {
		return event, nil
	}
	return nil, fmt.Errorf("unexpected source type %T for Event field", src)
}
