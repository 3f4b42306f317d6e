package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	categoriesHandler := &CategoriesHandler{DB: db}
	membersHandler := &MembersHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW(RequireAdmin(h))
	}

	// Public: login and registration.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Dashboard (admin only).
	mux.Handle("GET /api/dashboard", admin(dashboardHandler.Get))

	// Items: read (any approved member), write (admin).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", admin(itemsHandler.Create))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", admin(itemsHandler.Update))
	mux.Handle("DELETE /api/items/{id}", admin(itemsHandler.Delete))
	mux.Handle("PUT /api/items/{id}/photo", admin(itemsHandler.UploadPhoto))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))

	// Categories: read (any approved member), write (admin).
	mux.Handle("GET /api/categories", authMW(http.HandlerFunc(categoriesHandler.List)))
	mux.Handle("POST /api/categories", admin(categoriesHandler.Create))
	mux.Handle("GET /api/categories/{id}", authMW(http.HandlerFunc(categoriesHandler.Get)))
	mux.Handle("PUT /api/categories/{id}", admin(categoriesHandler.Update))
	mux.Handle("DELETE /api/categories/{id}", admin(categoriesHandler.Delete))

	// Members (admin only).
	mux.Handle("GET /api/members", admin(membersHandler.List))
	mux.Handle("GET /api/members/{id}", admin(membersHandler.Get))
	mux.Handle("PUT /api/members/{id}/approve", admin(membersHandler.Approve))
	mux.Handle("DELETE /api/members/{id}", admin(membersHandler.Delete))

	return mux
}
