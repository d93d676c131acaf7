package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "usuarioID"
	CtxUsername ctxKey = "username"
	CtxGrupos   ctxKey = "grupos"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxUsername, claims.Username)
		ctx = context.WithValue(ctx, CtxGrupos, claims.Grupos)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDDoContexto devolve o ID do usuário autenticado
func UserIDDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUserID).(uint)
	return id
}

// UsernameDoContexto devolve o username do usuário autenticado
func UsernameDoContexto(ctx context.Context) string {
	u, _ := ctx.Value(CtxUsername).(string)
	return u
}

// GruposDoContexto devolve os grupos do usuário autenticado
func GruposDoContexto(ctx context.Context) []string {
	g, _ := ctx.Value(CtxGrupos).([]string)
	return g
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(GruposDoContexto(r.Context())) {
			http.Error(w, "Acesso negado. Apenas administradores podem executar esta operação.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdminOuSuperior(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminOuSuperior(GruposDoContexto(r.Context())) {
			http.Error(w, "Acesso negado. Apenas administradores e superiores podem executar esta operação.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
