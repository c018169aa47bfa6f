package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/service"
)

type todoForm struct {
	Content string `form:"content" binding:"required,max=1000"`
}

func (h *Handler) listTodos(c *gin.Context) {
	user := currentUser(c)
	todos, err := h.services.Todos.List(c.Request.Context(), user.ID)
	if err != nil {
		h.serverError(c, "list_todos_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todos.html", gin.H{"User": user, "Todos": todos})
}

// createTodo adds an item and hands back the re-rendered list so HTMX can
// swap it in place. Plain form posts fall back to a redirect.
func (h *Handler) createTodo(c *gin.Context) {
	user := currentUser(c)

	var form todoForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusUnprocessableEntity, "content must be 1-1000 characters")
		return
	}

	if _, err := h.services.Todos.Create(c.Request.Context(), user.ID, form.Content); err != nil {
		h.todoError(c, "create_todo_failed", err)
		return
	}

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	todos, err := h.services.Todos.List(c.Request.Context(), user.ID)
	if err != nil {
		h.serverError(c, "list_todos_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todo_list.html", todos)
}

func (h *Handler) getTodo(c *gin.Context) {
	user := currentUser(c)
	todo, err := h.services.Todos.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.todoError(c, "get_todo_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todo_item.html", todo)
}

func (h *Handler) editTodoForm(c *gin.Context) {
	user := currentUser(c)
	todo, err := h.services.Todos.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.todoError(c, "edit_todo_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todo_edit.html", todo)
}

func (h *Handler) updateTodo(c *gin.Context) {
	user := currentUser(c)

	var form todoForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusUnprocessableEntity, "content must be 1-1000 characters")
		return
	}

	todo, err := h.services.Todos.Update(c.Request.Context(), user.ID, c.Param("id"), form.Content)
	if err != nil {
		h.todoError(c, "update_todo_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todo_item.html", todo)
}

func (h *Handler) toggleTodo(c *gin.Context) {
	user := currentUser(c)
	todo, err := h.services.Todos.Toggle(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.todoError(c, "toggle_todo_failed", err)
		return
	}
	c.HTML(http.StatusOK, "todo_item.html", todo)
}

// deleteTodo answers an empty 200 so the hx-swap removes the row.
func (h *Handler) deleteTodo(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.Todos.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.todoError(c, "delete_todo_failed", err)
		return
	}
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Status(http.StatusOK)
}

// todoError maps service errors onto responses: a missing or foreign id is
// a 404 (indistinguishable on purpose), bad content a 422, anything else a
// logged 500.
func (h *Handler) todoError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		if isHTMX(c) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.HTML(http.StatusNotFound, "not_found.html", nil)
	case errors.Is(err, service.ErrInvalidContent):
		c.String(http.StatusUnprocessableEntity, err.Error())
	default:
		h.serverError(c, msg, err)
	}
}
