package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/xetrr/catalog-admin/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)

	// Authenticated pages. Each entity page dispatches on its "do" action.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))
	mux.Handle("/items", cookieAuth(http.HandlerFunc(s.Items)))
	mux.Handle("/categories", cookieAuth(http.HandlerFunc(s.Categories)))
	mux.Handle("/members", cookieAuth(http.HandlerFunc(s.Members)))

	return mux, nil
}
