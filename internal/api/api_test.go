package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/xetrr/catalog-admin/internal/auth"
	"github.com/xetrr/catalog-admin/internal/db"
	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create an approved admin.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateMember(ctx, database, "admin", "admin@example.com", string(hash), model.StatusApproved, model.GroupAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token, database
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func seedReferences(t *testing.T, database *sql.DB) (memberID, categoryID int64) {
	t.Helper()
	ctx := context.Background()
	member, err := store.CreateMember(ctx, database, "seller", "seller@example.com", "hash", model.StatusApproved, model.GroupMember)
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	category, err := store.CreateCategory(ctx, database, &model.Category{Name: "Furniture", Description: "Chairs and tables"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return member.ID, category.ID
}

func TestLoginEndpoint(t *testing.T) {
	server, _, database := setupTestServer(t)

	// Bad password.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Pending members are locked out even with correct credentials.
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateMember(context.Background(), database, "pending", "p@example.com", string(hash), model.StatusPending, model.GroupMember)
	body, _ = json.Marshal(map[string]string{"username": "pending", "password": "password"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for pending member, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterEndpoint(t *testing.T) {
	server, _, database := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"username": "shopper",
		"email":    "shopper@example.com",
		"password": "longenough",
	})
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var member model.Member
	json.NewDecoder(resp.Body).Decode(&member)
	resp.Body.Close()

	if member.Status != model.StatusPending || member.Group != model.GroupMember {
		t.Errorf("expected pending regular member, got %+v", member)
	}

	// Duplicate username.
	resp, _ = http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if n, _ := store.Exists(context.Background(), database, store.MemberByUsername, "shopper"); n != 1 {
		t.Errorf("expected exactly one shopper, got %d", n)
	}
}

func TestItemsAPIFlow(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, categoryID := seedReferences(t, database)

	// Create item.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":        "Lamp",
		"description": "Reading lamp",
		"price":       19.99,
		"country":     "US",
		"status":      1,
		"member_id":   memberID,
		"category_id": categoryID,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var item model.Item
	json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()
	if item.MemberName != "seller" || item.CategoryName != "Furniture" {
		t.Errorf("expected joined names on created item, got %+v", item)
	}

	// List items.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}

	// Update.
	req, _ = authRequest("PUT", fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), token, map[string]any{
		"name":        "Desk lamp",
		"description": "Reading lamp",
		"price":       24.50,
		"country":     "US",
		"status":      2,
		"member_id":   memberID,
		"category_id": categoryID,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	got, _ := store.GetItem(context.Background(), database, item.ID)
	if got.Name != "Desk lamp" || got.Price != 24.50 {
		t.Errorf("update not applied: %+v", got)
	}

	// Delete.
	req, _ = authRequest("DELETE", fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if n, _ := store.Count(context.Background(), database, store.TableItems); n != 0 {
		t.Errorf("expected 0 items, got %d", n)
	}
}

func TestItemCreateValidation(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, _ := seedReferences(t, database)

	// Unknown category reference.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":        "Lamp",
		"description": "Reading lamp",
		"price":       19.99,
		"country":     "US",
		"status":      1,
		"member_id":   memberID,
		"category_id": 999999,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing category, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Status outside the known set.
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":        "Lamp",
		"description": "Reading lamp",
		"price":       19.99,
		"country":     "US",
		"status":      7,
		"member_id":   memberID,
		"category_id": 1,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad status, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if n, _ := store.Count(context.Background(), database, store.TableItems); n != 0 {
		t.Errorf("expected zero writes, got %d", n)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, categoryID := seedReferences(t, database)

	req, _ := authRequest("PUT", server.URL+"/api/items/999999", token, map[string]any{
		"name":        "Lamp",
		"description": "Reading lamp",
		"price":       19.99,
		"country":     "US",
		"status":      1,
		"member_id":   memberID,
		"category_id": categoryID,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing item, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesAPIFlow(t *testing.T) {
	server, token, database := setupTestServer(t)

	body := map[string]any{
		"name":        "Books",
		"description": "Paper things",
		"ordering":    1,
	}
	req, _ := authRequest("POST", server.URL+"/api/categories", token, body)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate name is refused.
	req, _ = authRequest("POST", server.URL+"/api/categories", token, body)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate name, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if n, _ := store.Count(context.Background(), database, store.TableCategories); n != 1 {
		t.Errorf("expected 1 category, got %d", n)
	}
}

func TestCategoryDeleteRestricted(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, categoryID := seedReferences(t, database)

	store.CreateItem(context.Background(), database, &model.Item{
		Name: "Chair", Description: "d", Price: 1, Country: "US",
		Status: model.ItemStatusNew, MemberID: memberID, CategoryID: categoryID,
	})

	req, _ := authRequest("DELETE", fmt.Sprintf("%s/api/categories/%d", server.URL, categoryID), token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for referenced category, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if n, _ := store.Count(context.Background(), database, store.TableCategories); n != 1 {
		t.Errorf("expected category to survive, got %d", n)
	}
}

func TestMembersAPIFlow(t *testing.T) {
	server, token, database := setupTestServer(t)
	ctx := context.Background()

	pending, _ := store.CreateMember(ctx, database, "newbie", "n@example.com", "hash", model.StatusPending, model.GroupMember)

	// Approve.
	req, _ := authRequest("PUT", fmt.Sprintf("%s/api/members/%d/approve", server.URL, pending.ID), token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on approve, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	got, _ := store.GetMember(ctx, database, pending.ID)
	if got.Status != model.StatusApproved {
		t.Errorf("expected approved member, got %v", got.Status)
	}

	// Approving again conflicts.
	req, _ = authRequest("PUT", fmt.Sprintf("%s/api/members/%d/approve", server.URL, pending.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 on re-approve, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Delete.
	req, _ = authRequest("DELETE", fmt.Sprintf("%s/api/members/%d", server.URL, pending.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMemberDeleteRestricted(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, categoryID := seedReferences(t, database)
	ctx := context.Background()

	store.CreateItem(ctx, database, &model.Item{
		Name: "Chair", Description: "d", Price: 1, Country: "US",
		Status: model.ItemStatusNew, MemberID: memberID, CategoryID: categoryID,
	})

	req, _ := authRequest("DELETE", fmt.Sprintf("%s/api/members/%d", server.URL, memberID), token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for member with items, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Self-delete is refused.
	admin, _ := store.GetMemberByUsername(ctx, database, "admin")
	req, _ = authRequest("DELETE", fmt.Sprintf("%s/api/members/%d", server.URL, admin.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for self-delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDashboardEndpoint(t *testing.T) {
	server, token, database := setupTestServer(t)
	memberID, categoryID := seedReferences(t, database)
	ctx := context.Background()

	store.CreateItem(ctx, database, &model.Item{
		Name: "Chair", Description: "d", Price: 1, Country: "US",
		Status: model.ItemStatusNew, MemberID: memberID, CategoryID: categoryID,
	})
	store.CreateMember(ctx, database, "waiting", "w@example.com", "hash", model.StatusPending, model.GroupMember)

	req, _ := authRequest("GET", server.URL+"/api/dashboard", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var dash dashboardResponse
	json.NewDecoder(resp.Body).Decode(&dash)
	resp.Body.Close()

	if dash.Items != 1 || dash.Categories != 1 || dash.Members != 3 || dash.PendingMembers != 1 {
		t.Errorf("unexpected counts: %+v", dash)
	}
	if len(dash.LatestItems) != 1 || len(dash.LatestMembers) != 3 {
		t.Errorf("unexpected latest lists: %d items, %d members", len(dash.LatestItems), len(dash.LatestMembers))
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGroupBasedAccess(t *testing.T) {
	server, _, database := setupTestServer(t)
	ctx := context.Background()

	member, _ := store.CreateMember(ctx, database, "member1", "m@example.com", "hash", model.StatusApproved, model.GroupMember)
	memberToken, _ := auth.GenerateToken(testJWTSecret, member.ID, member.Username, member.Group)

	// Regular members can read items.
	req, _ := authRequest("GET", server.URL+"/api/items", memberToken, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for member listing items, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// But not write them.
	req, _ = authRequest("POST", server.URL+"/api/items", memberToken, map[string]any{"name": "Test"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for member creating item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// And member administration is off limits.
	req, _ = authRequest("GET", server.URL+"/api/members", memberToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for member listing members, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
