package get

import (
	"net/http"

	"github.com/a-h/gugi/models"
	"github.com/a-h/respond"
)

// Root answers liveness checks on /.
type Root struct{}

func (Root) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.RootResponse{
		Status:  "ok",
		Service: "backend",
		API:     "/api/",
	}, http.StatusOK)
}

// API answers on /api/.
type API struct{}

func (API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.MessageResponse{Message: "Hello World"}, http.StatusOK)
}
