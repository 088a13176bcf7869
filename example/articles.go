package main

import (
	"net/http"

	"github.com/voltframework/volt/pkg/ctx"
	"github.com/voltframework/volt/pkg/database"
	"github.com/voltframework/volt/pkg/orm"
	"github.com/voltframework/volt/pkg/response"
)

type ArticleController struct{}

func NewArticleController() *ArticleController { return &ArticleController{} }

func (a *ArticleController) Index(c *ctx.Context) {
	var items []Article
	p, err := orm.Paginate(database.DB, &items, c.QueryInt("page", 1), c.QueryInt("per_page", 20))
	if err != nil {
		response.Error(c.W, http.StatusInternalServerError, err.Error())
		return
	}
	response.Paginated(c.W, items, p)
}

func (a *ArticleController) Store(c *ctx.Context) {
	var item Article
	if !c.BindJSON(&item) {
		return
	}
	if err := database.DB.Create(&item).Error; err != nil {
		response.Error(c.W, http.StatusInternalServerError, err.Error())
		return
	}
	// Push new articles to WebSocket subscribers.
	newsroom.Broadcast([]byte(item.Title))
	response.Created(c.W, item)
}

func (a *ArticleController) Show(c *ctx.Context) {
	id, ok := c.ParamInt("id")
	if !ok {
		response.Error(c.W, http.StatusBadRequest, "invalid id")
		return
	}
	var item Article
	if err := database.DB.First(&item, id).Error; err != nil {
		response.NotFound(c.W)
		return
	}
	response.Success(c.W, item)
}

func (a *ArticleController) Update(c *ctx.Context) {
	id, ok := c.ParamInt("id")
	if !ok {
		response.Error(c.W, http.StatusBadRequest, "invalid id")
		return
	}
	var item Article
	if err := database.DB.First(&item, id).Error; err != nil {
		response.NotFound(c.W)
		return
	}
	if !c.BindJSON(&item) {
		return
	}
	if err := database.DB.Save(&item).Error; err != nil {
		response.Error(c.W, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c.W, item)
}

func (a *ArticleController) Destroy(c *ctx.Context) {
	id, ok := c.ParamInt("id")
	if !ok {
		response.Error(c.W, http.StatusBadRequest, "invalid id")
		return
	}
	if err := database.DB.Delete(&Article{}, id).Error; err != nil {
		response.Error(c.W, http.StatusInternalServerError, err.Error())
		return
	}
	response.NoContent(c.W)
}

func seedArticles() {
	database.DB.FirstOrCreate(&Article{
		Title: "Hello Volt",
		Body:  "This article was planted by the example seeder.",
	}, Article{Title: "Hello Volt"})
}
