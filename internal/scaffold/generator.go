package scaffold

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/example/crudgen/internal/core/naming"
	scaffoldtmpl "github.com/example/crudgen/internal/templates/scaffold"
)

// Route files and the markers that guard their appended blocks.
const (
	WebRoutes = "routes/web.php"
	APIRoutes = "routes/api.php"

	WebAuthMarker = `[\App\Http\Controllers\Auth\LoginController::class, "showLoginForm"]`
	APIAuthMarker = `[\App\Http\Controllers\Api\Auth\RegisterController::class, "register"]`
	RBACMarker    = `Route::prefix('rbac')`

	AdminLayoutPath = "resources/views/layouts/admin.blade.php"

	// MigrationTimestampLayout is Laravel's migration file prefix format.
	MigrationTimestampLayout = "2006_01_02_150405"
)

// CrudRouteMarker returns the marker guarding a CRUD resource route.
func CrudRouteMarker(slug string) string {
	return fmt.Sprintf("Route::resource('%s',", slug)
}

// RBACMigrations lists the RBAC migrations in the order they must run.
var RBACMigrations = []string{
	"create_roles_table",
	"create_permission_groups_table",
	"create_permissions_table",
	"create_role_permissions_table",
	"create_user_roles_table",
}

// RBACTables lists the tables created by RBACMigrations.
var RBACTables = []string{"roles", "permission_groups", "permissions", "role_permissions", "user_roles"}

// RBACInput contains pre-fetched state for RBAC generation.
type RBACInput struct {
	Now time.Time
	// ExistingMigrations holds migration names (e.g. "create_roles_table")
	// already present under database/migrations.
	ExistingMigrations map[string]bool
}

// Generator generates code from templates.
type Generator struct {
	funcs  template.FuncMap
	layout LayoutOptions
}

// NewGenerator creates a new Generator.
func NewGenerator(layout LayoutOptions) *Generator {
	return &Generator{
		funcs:  scaffoldtmpl.TemplateFuncs(),
		layout: layout,
	}
}

// GenerateCrud generates all files for a CRUD module over an existing model.
func (g *Generator) GenerateCrud(spec *ArtifactSpec) (*GeneratorResult, error) {
	result := &GeneratorResult{}

	layout, err := g.renderLayout(false)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, layout)

	type requestData struct {
		*ArtifactSpec
		RequestPrefix string
	}

	n, slug := spec.Name, spec.Slug
	files := []struct {
		kind     ArtifactKind
		template string
		path     string
		data     any
	}{
		{KindResource, "crud/resource.php", fmt.Sprintf("app/Http/Resources/%s/%sResource.php", n, n), spec},
		{KindStoreRequest, "crud/request.php", fmt.Sprintf("app/Http/Requests/%s/Store%sRequest.php", n, n), requestData{spec, "Store"}},
		{KindUpdateRequest, "crud/request.php", fmt.Sprintf("app/Http/Requests/%s/Update%sRequest.php", n, n), requestData{spec, "Update"}},
		{KindController, "crud/controller.php", fmt.Sprintf("app/Http/Controllers/%s/%sController.php", n, n), spec},
		{KindIndexView, "crud/index.blade.php", fmt.Sprintf("resources/views/%s/index.blade.php", slug), spec},
		{KindCreateView, "crud/create.blade.php", fmt.Sprintf("resources/views/%s/create.blade.php", slug), spec},
		{KindEditView, "crud/edit.blade.php", fmt.Sprintf("resources/views/%s/edit.blade.php", slug), spec},
		{KindShowView, "crud/show.blade.php", fmt.Sprintf("resources/views/%s/show.blade.php", slug), spec},
	}

	for _, f := range files {
		content, err := g.renderTemplate(f.template, f.data)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f.template, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    f.kind,
			Path:    f.path,
			Content: content,
			Policy:  Overwrite,
		})
	}

	route, err := g.renderTemplate("crud/routes.php", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render crud/routes.php: %w", err)
	}
	result.Files = append(result.Files, GeneratedFile{
		Kind:    KindRouteFragment,
		Path:    WebRoutes,
		Content: route,
		Policy:  AppendIfAbsent,
		Marker:  CrudRouteMarker(slug),
	})

	result.NextSteps = []string{
		fmt.Sprintf("Visit /%s to manage %s records", slug, n),
		"Make sure public/backend contains the admin theme assets used by layouts/admin",
	}

	return result, nil
}

// GenerateWebAuth generates session-based authentication scaffolding.
func (g *Generator) GenerateWebAuth() (*GeneratorResult, error) {
	result := &GeneratorResult{}

	requests, err := g.renderAuthRequests("Auth", "app/Http/Requests/Auth")
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, requests...)

	files := []struct {
		kind     ArtifactKind
		template string
		path     string
	}{
		{KindController, "auth/register_controller.php", "app/Http/Controllers/Auth/RegisterController.php"},
		{KindController, "auth/login_controller.php", "app/Http/Controllers/Auth/LoginController.php"},
		{KindController, "auth/profile_controller.php", "app/Http/Controllers/Auth/ProfileController.php"},
		{KindController, "auth/home_controller.php", "app/Http/Controllers/HomeController.php"},
		{KindView, "auth/login.blade.php", "resources/views/auth/login.blade.php"},
		{KindView, "auth/register.blade.php", "resources/views/auth/register.blade.php"},
		{KindView, "auth/profile.blade.php", "resources/views/auth/profile.blade.php"},
		{KindLayout, "auth/app.blade.php", "resources/views/layouts/app.blade.php"},
		{KindView, "auth/home.blade.php", "resources/views/home.blade.php"},
		{KindStylesheet, "auth/style.css", "public/auth/css/style.css"},
	}

	for _, f := range files {
		content, err := g.renderTemplate(f.template, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f.template, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    f.kind,
			Path:    f.path,
			Content: content,
			Policy:  Overwrite,
		})
	}

	route, err := g.renderTemplate("auth/routes.php", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render auth/routes.php: %w", err)
	}
	result.Files = append(result.Files, GeneratedFile{
		Kind:    KindRouteFragment,
		Path:    WebRoutes,
		Content: route,
		Policy:  AppendIfAbsent,
		Marker:  WebAuthMarker,
	})

	result.NextSteps = []string{
		"Run 'php artisan migrate' if the users table does not exist yet",
		"Visit /register, /login, /profile and /dashboard",
	}

	return result, nil
}

// GenerateAPIAuth generates token-based API authentication scaffolding.
func (g *Generator) GenerateAPIAuth() (*GeneratorResult, error) {
	result := &GeneratorResult{}

	requests, err := g.renderAuthRequests(`Api\Auth`, "app/Http/Requests/Api/Auth")
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, requests...)

	for _, name := range []string{"Register", "Login", "Profile"} {
		tmpl := "api/" + naming.Snake(name) + "_controller.php"
		content, err := g.renderTemplate(tmpl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tmpl, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    KindController,
			Path:    fmt.Sprintf("app/Http/Controllers/Api/Auth/%sController.php", name),
			Content: content,
			Policy:  Overwrite,
		})
	}

	route, err := g.renderTemplate("api/routes.php", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render api/routes.php: %w", err)
	}
	result.Files = append(result.Files, GeneratedFile{
		Kind:    KindRouteFragment,
		Path:    APIRoutes,
		Content: route,
		Policy:  AppendIfAbsent,
		Marker:  APIAuthMarker,
	})

	result.NextSteps = []string{
		"Add the HasApiTokens trait to App\\Models\\User",
		"Use /api/register, /api/login, /api/logout and /api/profile",
	}

	return result, nil
}

// GenerateRBAC generates the role/permission admin panel. Migrations listed
// in input.ExistingMigrations are left out; the remaining ones get
// consecutive timestamps starting at input.Now so they run in order.
func (g *Generator) GenerateRBAC(input RBACInput) (*GeneratorResult, error) {
	result := &GeneratorResult{}

	models := []struct{ class, template string }{
		{"Role", "rbac/model_role.php"},
		{"PermissionGroup", "rbac/model_permission_group.php"},
		{"Permission", "rbac/model_permission.php"},
		{"RolePermission", "rbac/model_role_permission.php"},
		{"UserRole", "rbac/model_user_role.php"},
	}
	for _, m := range models {
		content, err := g.renderTemplate(m.template, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", m.template, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    KindModel,
			Path:    fmt.Sprintf("app/Models/%s.php", m.class),
			Content: content,
			Policy:  SkipIfExists,
		})
	}

	ts := input.Now
	for _, name := range RBACMigrations {
		if input.ExistingMigrations[name] {
			continue
		}
		tmpl := "rbac/migration_" + name + ".php"
		content, err := g.renderTemplate(tmpl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tmpl, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    KindMigration,
			Path:    fmt.Sprintf("database/migrations/%s_%s.php", ts.Format(MigrationTimestampLayout), name),
			Content: content,
			Policy:  SkipIfExists,
		})
		ts = ts.Add(time.Second)
	}

	for _, c := range []string{"Role", "User", "PermissionGroup", "Permission"} {
		tmpl := "rbac/" + naming.Snake(c) + "_controller.php"
		content, err := g.renderTemplate(tmpl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tmpl, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    KindController,
			Path:    fmt.Sprintf("app/Http/Controllers/Rbac/%sController.php", c),
			Content: content,
			Policy:  SkipIfExists,
		})
	}

	views := []struct{ folder, view string }{
		{"roles", "index"}, {"roles", "create"}, {"roles", "edit"}, {"roles", "show"},
		{"users", "index"}, {"users", "assign-role"},
		{"permission-groups", "index"}, {"permission-groups", "create"}, {"permission-groups", "edit"}, {"permission-groups", "show"},
		{"permissions", "index"}, {"permissions", "create"}, {"permissions", "edit"}, {"permissions", "show"},
	}
	for _, v := range views {
		tmpl := "rbac/" + naming.Snake(v.folder) + "_" + naming.Snake(v.view) + ".blade.php"
		content, err := g.renderTemplate(tmpl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tmpl, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    KindView,
			Path:    fmt.Sprintf("resources/views/rbac/%s/%s.blade.php", v.folder, v.view),
			Content: content,
			Policy:  Overwrite,
		})
	}

	layout, err := g.renderLayout(true)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, layout)

	route, err := g.renderTemplate("rbac/routes.php", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render rbac/routes.php: %w", err)
	}
	result.Files = append(result.Files, GeneratedFile{
		Kind:    KindRouteFragment,
		Path:    WebRoutes,
		Content: route,
		Policy:  AppendIfAbsent,
		Marker:  RBACMarker,
	})

	result.NextSteps = []string{
		"Add a roles() belongsToMany(Role::class, 'user_roles') relation to App\\Models\\User",
		"Visit /rbac/roles to manage roles and permissions",
	}

	return result, nil
}

// Only returns the files of the given kinds, preserving order.
func (r *GeneratorResult) Only(kinds ...ArtifactKind) []GeneratedFile {
	var out []GeneratedFile
	for _, f := range r.Files {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func (g *Generator) renderAuthRequests(namespace, dir string) ([]GeneratedFile, error) {
	data := struct{ Namespace string }{namespace}

	var files []GeneratedFile
	for _, name := range []string{"Register", "Login", "Profile"} {
		tmpl := "auth/" + naming.Snake(name) + "_request.php"
		content, err := g.renderTemplate(tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tmpl, err)
		}
		files = append(files, GeneratedFile{
			Kind:    KindRequest,
			Path:    fmt.Sprintf("%s/%sRequest.php", dir, name),
			Content: content,
			Policy:  Overwrite,
		})
	}
	return files, nil
}

func (g *Generator) renderLayout(rbac bool) (GeneratedFile, error) {
	data := struct {
		LayoutOptions
		Rbac bool
	}{g.layout, rbac}

	content, err := g.renderTemplate("layout/admin.blade.php", data)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("failed to render admin layout: %w", err)
	}
	return GeneratedFile{
		Kind:    KindLayout,
		Path:    AdminLayoutPath,
		Content: content,
		Policy:  SkipIfExists,
	}, nil
}

// renderTemplate renders a scaffold template.
func (g *Generator) renderTemplate(name string, data any) (string, error) {
	tmplContent, err := scaffoldtmpl.GetTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).
		Delims(scaffoldtmpl.LeftDelim, scaffoldtmpl.RightDelim).
		Funcs(g.funcs).
		Option("missingkey=error").
		Parse(tmplContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
