package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"eventbook/internal/middleware"
	"eventbook/internal/resolvers"
	"eventbook/internal/store"
	"eventbook/pkg/ctxkeys"
	"eventbook/pkg/logging"
)

var testSecret = []byte("graph-test-secret")

func newTestSchema(t *testing.T) (graphql.Schema, *resolvers.Resolver) {
	t.Helper()
	r := resolvers.NewResolver(resolvers.Config{
		Store:      store.NewMemoryStore(),
		Logger:     logging.NewLogger(),
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	schema, err := NewSchema(r)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return schema, r
}

func exec(schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
}

func registerUser(t *testing.T, schema graphql.Schema, email string) string {
	t.Helper()
	query := fmt.Sprintf(`mutation {
		createUser(userInput: {email: %q, password: "s3cret"}) { id email password }
	}`, email)
	result := exec(schema, context.Background(), query)
	if len(result.Errors) > 0 {
		t.Fatalf("createUser failed: %v", result.Errors)
	}
	user := result.Data.(map[string]interface{})["createUser"].(map[string]interface{})
	if user["password"] != nil {
		t.Fatalf("password leaked into response: %v", user["password"])
	}
	return user["id"].(string)
}

func authedCtx(userID, email string) context.Context {
	return context.WithValue(context.Background(), ctxkeys.KeyIdentity, middleware.Identity{
		UserID:        userID,
		Email:         email,
		Authenticated: true,
	})
}

func TestCreateEventAndLazyCreator(t *testing.T) {
	schema, _ := newTestSchema(t)
	userID := registerUser(t, schema, "owner@example.com")

	mutation := `mutation {
		createEvent(eventInput: {title: "Concert", description: "Live", price: 25.5, date: "2026-09-01T20:00:00Z"}) {
			id title price date
		}
	}`
	result := exec(schema, authedCtx(userID, "owner@example.com"), mutation)
	if len(result.Errors) > 0 {
		t.Fatalf("createEvent failed: %v", result.Errors)
	}

	query := `{ events { title date creator { id email password createdEvents { title } } } }`
	result = exec(schema, context.Background(), query)
	if len(result.Errors) > 0 {
		t.Fatalf("events query failed: %v", result.Errors)
	}
	events := result.Data.(map[string]interface{})["events"].([]interface{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0].(map[string]interface{})
	if event["date"] != "2026-09-01T20:00:00Z" {
		t.Fatalf("unexpected date %v", event["date"])
	}
	creator := event["creator"].(map[string]interface{})
	if creator["id"] != userID || creator["email"] != "owner@example.com" {
		t.Fatalf("unexpected creator %v", creator)
	}
	if creator["password"] != nil {
		t.Fatalf("creator password leaked: %v", creator["password"])
	}
	created := creator["createdEvents"].([]interface{})
	if len(created) != 1 || created[0].(map[string]interface{})["title"] != "Concert" {
		t.Fatalf("unexpected createdEvents %v", created)
	}
}

func TestSchemaFieldContract(t *testing.T) {
	schema, _ := newTestSchema(t)

	userType, ok := schema.Type("User").(*graphql.Object)
	if !ok {
		t.Fatal("User type missing from schema")
	}
	eventType, ok := schema.Type("Event").(*graphql.Object)
	if !ok {
		t.Fatal("Event type missing from schema")
	}
	if got := userType.Fields()["id"].Type.String(); got != "ID!" {
		t.Fatalf("User.id typed %q, want ID!", got)
	}
	if got := eventType.Fields()["id"].Type.String(); got != "ID!" {
		t.Fatalf("Event.id typed %q, want ID!", got)
	}
	if got := userType.Fields()["createdEvents"].Type.String(); got != "[Event!]!" {
		t.Fatalf("User.createdEvents typed %q, want [Event!]!", got)
	}

	userID := registerUser(t, schema, "owner@example.com")
	mutation := `mutation {
		createEvent(eventInput: {title: "Concert", description: "Live", price: 10, date: "2026-09-01"}) { id }
	}`
	result := exec(schema, authedCtx(userID, "owner@example.com"), mutation)
	if len(result.Errors) > 0 {
		t.Fatalf("createEvent failed: %v", result.Errors)
	}
	eventID := result.Data.(map[string]interface{})["createEvent"].(map[string]interface{})["id"].(string)

	result = exec(schema, context.Background(), `{ events { id creator { id createdEvents { id } } } }`)
	if len(result.Errors) > 0 {
		t.Fatalf("events query failed: %v", result.Errors)
	}
	events := result.Data.(map[string]interface{})["events"].([]interface{})
	event := events[0].(map[string]interface{})
	if event["id"] != eventID {
		t.Fatalf("event id %v, want %v", event["id"], eventID)
	}
	creator := event["creator"].(map[string]interface{})
	if creator["id"] != userID {
		t.Fatalf("creator id %v, want %v", creator["id"], userID)
	}
	created := creator["createdEvents"].([]interface{})
	if len(created) != 1 || created[0].(map[string]interface{})["id"] != eventID {
		t.Fatalf("unexpected createdEvents %v", created)
	}
}

func TestDateRoundTripStable(t *testing.T) {
	schema, _ := newTestSchema(t)
	userID := registerUser(t, schema, "owner@example.com")

	mutation := `mutation {
		createEvent(eventInput: {title: "Meetup", description: "d", price: 0, date: "2024-03-01"}) { date }
	}`
	result := exec(schema, authedCtx(userID, "owner@example.com"), mutation)
	if len(result.Errors) > 0 {
		t.Fatalf("createEvent failed: %v", result.Errors)
	}

	var last string
	for i := 0; i < 3; i++ {
		result = exec(schema, context.Background(), `{ events { date } }`)
		if len(result.Errors) > 0 {
			t.Fatalf("events query failed: %v", result.Errors)
		}
		events := result.Data.(map[string]interface{})["events"].([]interface{})
		date := events[0].(map[string]interface{})["date"].(string)
		if date != "2024-03-01T00:00:00Z" {
			t.Fatalf("unexpected date normalization %q", date)
		}
		if last != "" && date != last {
			t.Fatalf("date changed across reads: %q then %q", last, date)
		}
		last = date
	}
}

func TestUnauthenticatedCreateEvent(t *testing.T) {
	schema, _ := newTestSchema(t)
	registerUser(t, schema, "owner@example.com")

	mutation := `mutation {
		createEvent(eventInput: {title: "Nope", description: "d", price: 1, date: "2026-01-01"}) { id }
	}`
	result := exec(schema, context.Background(), mutation)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for unauthenticated createEvent")
	}
	if result.Errors[0].Message != "unauthenticated" {
		t.Fatalf("unexpected error message %q", result.Errors[0].Message)
	}

	events := exec(schema, context.Background(), `{ events { title } }`)
	if len(events.Errors) > 0 {
		t.Fatalf("events query failed: %v", events.Errors)
	}
	if got := events.Data.(map[string]interface{})["events"].([]interface{}); len(got) != 0 {
		t.Fatalf("rejected mutation must not store an event, got %v", got)
	}
}

func TestPartialSuccessAcrossSiblings(t *testing.T) {
	schema, _ := newTestSchema(t)
	registerUser(t, schema, "owner@example.com")

	// login succeeds while the unauthenticated createEvent sibling fails;
	// the error must not wipe out the sibling's data.
	mutation := `mutation {
		auth: login(email: "owner@example.com", password: "s3cret") { userId tokenExpiration }
		createEvent(eventInput: {title: "Nope", description: "d", price: 1, date: "2026-01-01"}) { id }
	}`
	result := exec(schema, context.Background(), mutation)
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	data := result.Data.(map[string]interface{})
	if data["createEvent"] != nil {
		t.Fatalf("failed field should be null, got %v", data["createEvent"])
	}
	auth := data["auth"].(map[string]interface{})
	if auth["tokenExpiration"] != 1 {
		t.Fatalf("unexpected tokenExpiration %v", auth["tokenExpiration"])
	}
}

func TestLoginErrors(t *testing.T) {
	schema, _ := newTestSchema(t)
	registerUser(t, schema, "owner@example.com")

	cases := []struct {
		name    string
		query   string
		message string
	}{
		{
			name:    "unknown email",
			query:   `mutation { login(email: "ghost@example.com", password: "s3cret") { token } }`,
			message: "user not found",
		},
		{
			name:    "wrong password",
			query:   `mutation { login(email: "owner@example.com", password: "nope") { token } }`,
			message: "password is incorrect",
		},
		{
			name:    "duplicate registration",
			query:   `mutation { createUser(userInput: {email: "owner@example.com", password: "x"}) { id } }`,
			message: "user exists already",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := exec(schema, context.Background(), tc.query)
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if result.Errors[0].Message != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, result.Errors[0].Message)
			}
		})
	}
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, router *gin.Engine, token, query string) graphqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp graphqlResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestEndToEndFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	schema, _ := newTestSchema(t)
	router := gin.New()
	RegisterRoutes(router, Config{Schema: schema, JWTSecret: testSecret, ExplorerUI: false})

	resp := postGraphQL(t, router, "", `mutation {
		createUser(userInput: {email: "a@x.com", password: "pw1"}) { id email }
	}`)
	if len(resp.Errors) > 0 {
		t.Fatalf("createUser failed: %v", resp.Errors)
	}

	resp = postGraphQL(t, router, "", `mutation { login(email: "a@x.com", password: "pw1") { userId token } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("login failed: %v", resp.Errors)
	}
	var authData struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data["login"], &authData); err != nil {
		t.Fatalf("failed to decode login payload: %v", err)
	}
	if authData.Token == "" {
		t.Fatal("expected a token")
	}

	// Without a token the mutation is rejected, nothing is stored.
	resp = postGraphQL(t, router, "", `mutation {
		createEvent(eventInput: {title: "T", description: "D", price: 10, date: "2024-01-01"}) { id }
	}`)
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "unauthenticated" {
		t.Fatalf("expected unauthenticated error, got %v", resp.Errors)
	}

	resp = postGraphQL(t, router, authData.Token, `mutation {
		createEvent(eventInput: {title: "T", description: "D", price: 10, date: "2024-01-01"}) { id title }
	}`)
	if len(resp.Errors) > 0 {
		t.Fatalf("authenticated createEvent failed: %v", resp.Errors)
	}

	resp = postGraphQL(t, router, "", `{ events { title creator { email } } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("events query failed: %v", resp.Errors)
	}
	var events []struct {
		Title   string `json:"title"`
		Creator struct {
			Email string `json:"email"`
		} `json:"creator"`
	}
	if err := json.Unmarshal(resp.Data["events"], &events); err != nil {
		t.Fatalf("failed to decode events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "T" || events[0].Creator.Email != "a@x.com" {
		t.Fatalf("unexpected events payload: %+v", events)
	}
}

func TestExplorerUIFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	schema, _ := newTestSchema(t)

	enabled := gin.New()
	RegisterRoutes(enabled, Config{Schema: schema, JWTSecret: testSecret, ExplorerUI: true})
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	enabled.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("graphiql")) {
		t.Fatalf("expected explorer page, got status %d", w.Code)
	}

	disabled := gin.New()
	RegisterRoutes(disabled, Config{Schema: schema, JWTSecret: testSecret, ExplorerUI: false})
	w = httptest.NewRecorder()
	disabled.ServeHTTP(w, req)
	if bytes.Contains(w.Body.Bytes(), []byte("graphiql")) {
		t.Fatal("explorer page served while disabled")
	}
}
