package handlers

import (
	"net/http"
	"strconv"

	"mernspace-auth/repository"
)

type pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"total_pages"`
}

type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func listQueryFrom(r *http.Request) repository.ListQuery {
	q := r.URL.Query()
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	currentPage, _ := strconv.Atoi(q.Get("current_page"))
	return repository.ListQuery{
		Q:           q.Get("q"),
		PerPage:     perPage,
		CurrentPage: currentPage,
	}.Normalize()
}

func newListResponse[T any](items []T, total int64, q repository.ListQuery) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Data: items,
		Pagination: pagination{
			CurrentPage: q.CurrentPage,
			PerPage:     q.PerPage,
			Total:       total,
			TotalPages:  (total + int64(q.PerPage) - 1) / int64(q.PerPage),
		},
	}
}
