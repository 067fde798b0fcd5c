package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// New wraps next so that requests need an API key, except for public paths,
// which are matched exactly against the request path.
func New(apiKeyToUserName map[string]string, next http.Handler, publicPaths ...string) *Auth {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	return &Auth{
		Next:             next,
		APIKeyToUserName: apiKeyToUserName,
		PublicPaths:      public,
	}
}

type Auth struct {
	Next             http.Handler
	APIKeyToUserName map[string]string
	PublicPaths      map[string]struct{}
}

func LoadFromFile(name string) (apiKeyToUserName map[string]string, err error) {
	f, err := os.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := make(map[string]string)
	if err = json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("auth: failed to decode %s: %w", name, err)
	}
	return m, nil
}

type userContextKey int

const userKey userContextKey = 0

func GetUser(r *http.Request) (user string, ok bool) {
	user, ok = r.Context().Value(userKey).(string)
	return
}

func (a *Auth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.PublicPaths[r.URL.Path]; ok {
		a.Next.ServeHTTP(w, r)
		return
	}
	user, ok := a.APIKeyToUserName[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	r = r.WithContext(context.WithValue(r.Context(), userKey, user))
	a.Next.ServeHTTP(w, r)
}
