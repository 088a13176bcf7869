// Package main is a small project built on the Volt framework. It shows
// the pieces a scaffolded project wires together: models, a resource
// controller, JWT auth, and a WebSocket channel.
//
// Run it with any of the project verbs:
//
//	cd example
//	go run . db migrate
//	go run . server
//	# curl http://localhost:3000/api/articles
package main

import (
	"net/http"

	"github.com/voltframework/volt/pkg/app"
	"github.com/voltframework/volt/pkg/auth"
	"github.com/voltframework/volt/pkg/ctx"
	"github.com/voltframework/volt/pkg/middleware"
	"github.com/voltframework/volt/pkg/response"
	"github.com/voltframework/volt/pkg/router"
	"github.com/voltframework/volt/pkg/ws"
	"gorm.io/gorm"
)

type Article struct {
	gorm.Model
	Title string `gorm:"size:255" json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

var newsroom = ws.Open("newsroom")

func main() {
	app.New().
		Routes(registerRoutes).
		AutoMigrate(&Article{}).
		Seeders(seedArticles).
		Run()
}

func registerRoutes(r *router.Router) {
	r.Get("/", "home", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, map[string]string{"app": "example", "framework": "volt"})
	})

	api := r.Group("/api")
	api.Post("/login", "auth.login", ctx.Wrap(login))

	articles := NewArticleController()
	r.Resource("/api/articles", "articles", router.ResourceHandlers{
		Index:   ctx.Wrap(articles.Index),
		Store:   ctx.Wrap(articles.Store),
		Show:    ctx.Wrap(articles.Show),
		Update:  ctx.Wrap(articles.Update),
		Destroy: ctx.Wrap(articles.Destroy),
	}, middleware.Auth)

	r.Get("/ws/newsroom", "ws.newsroom", func(w http.ResponseWriter, req *http.Request) {
		ws.Join(w, req, newsroom)
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// login issues a demo token for any well-formed credentials. A real
// project checks the password hash against a users table.
func login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	token, err := auth.GenerateToken(1, "user")
	if err != nil {
		response.Error(c.W, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c.W, map[string]string{"token": token})
}
