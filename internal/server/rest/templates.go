package rest

import (
	"html/template"
	"net/http"

	"memberportal/internal/model"
	"memberportal/pkg/logger"
)

type homeData struct {
	Username string
}

type formData struct {
	Message string
}

type membersData struct {
	Username string
	Image    string
}

type adminData struct {
	Users []*model.User
}

type lookupData struct {
	Message string
	Query   string
	Users   []*model.User
}

type errorData struct {
	Status  int
	Message string
}

func (s *Server) render(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Errorf("Failed to render %s page: %s", name, err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := pages.ExecuteTemplate(w, "error", errorData{Status: code, Message: message}); err != nil {
		logger.Errorf("Failed to render error page: %s", err)
	}
}

var pages = template.Must(template.New("pages").Parse(pagesHTML))

const pagesHTML = `
{{define "home"}}<!DOCTYPE html>
<html><head><title>Member Portal</title></head><body>
{{if .Username}}<h1>Welcome back, {{.Username}}!</h1>
<p><a href="/members">Members area</a> | <a href="/logout">Log out</a></p>
{{else}}<h1>Welcome</h1>
<p><a href="/signup">Sign up</a> | <a href="/login">Log in</a></p>
{{end}}</body></html>{{end}}

{{define "signup"}}<!DOCTYPE html>
<html><head><title>Sign up</title></head><body>
<h1>Sign up</h1>
{{if .Message}}<p class="error">{{.Message}}</p>{{end}}
<form method="POST" action="/signup">
<label>Username <input name="username" maxlength="20"></label>
<label>Email <input name="email" type="email"></label>
<label>Password <input name="password" type="password" maxlength="20"></label>
<button type="submit">Create account</button>
</form></body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><head><title>Log in</title></head><body>
<h1>Log in</h1>
{{if .Message}}<p class="error">{{.Message}}</p>{{end}}
<form method="POST" action="/login">
<label>Email <input name="email" type="email"></label>
<label>Password <input name="password" type="password" maxlength="20"></label>
<button type="submit">Log in</button>
</form></body></html>{{end}}

{{define "members"}}<!DOCTYPE html>
<html><head><title>Members</title></head><body>
<h1>Hello, {{.Username}}!</h1>
<img src="/static/{{.Image}}" alt="member image">
<p><a href="/logout">Log out</a></p>
</body></html>{{end}}

{{define "admin"}}<!DOCTYPE html>
<html><head><title>Admin</title></head><body>
<h1>User management</h1>
<table>
<tr><th>Username</th><th>Role</th><th>Actions</th></tr>
{{range .Users}}<tr>
<td>{{.Username}}</td><td>{{.Role}}</td>
<td><a href="/promote/{{.ID}}">Promote</a> | <a href="/demote/{{.ID}}">Demote</a></td>
</tr>{{end}}
</table></body></html>{{end}}

{{define "lookup"}}<!DOCTYPE html>
<html><head><title>User lookup</title></head><body>
<h1>User lookup</h1>
{{if .Message}}<p class="error">{{.Message}}</p>{{end}}
<form method="GET" action="/nosql-injection">
<label>Username <input name="user" maxlength="20" value="{{.Query}}"></label>
<button type="submit">Search</button>
</form>
{{if .Users}}<ul>{{range .Users}}<li>{{.Username}}</li>{{end}}</ul>{{end}}
</body></html>{{end}}

{{define "error"}}<!DOCTYPE html>
<html><head><title>Error {{.Status}}</title></head><body>
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Home</a></p>
</body></html>{{end}}
`
