package laravel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/crudgen/internal/ports/secondary"
)

var (
	resourcePattern   = regexp.MustCompile(`^Route::(resource|apiResource)\(\s*['"]([^'"]+)['"]`)
	namePattern       = regexp.MustCompile(`(?:->|::)(?:name|as)\(\s*['"]([^'"]*)['"]\s*\)`)
	groupAsPattern    = regexp.MustCompile(`['"]as['"]\s*=>\s*['"]([^'"]*)['"]`)
	onlyExceptPattern = regexp.MustCompile(`->(only|except)\(\s*\[([^\]]*)\]`)
	quotedPattern     = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

var (
	resourceActions    = []string{"index", "create", "store", "show", "edit", "update", "destroy"}
	apiResourceActions = []string{"index", "store", "show", "update", "destroy"}
)

// RouteFileCatalog implements secondary.RouteCatalog by reading route files
// directly. It understands named routes, resource declarations and group
// name prefixes; routes registered by packages are not visible to it.
type RouteFileCatalog struct {
	files []string
}

var _ secondary.RouteCatalog = (*RouteFileCatalog)(nil)

// NewRouteFileCatalog creates a catalog over routes/web.php and routes/api.php.
func NewRouteFileCatalog(root string) *RouteFileCatalog {
	return &RouteFileCatalog{files: []string{
		filepath.Join(root, "routes", "web.php"),
		filepath.Join(root, "routes", "api.php"),
	}}
}

// ListNamedRoutes returns route names in file order.
func (c *RouteFileCatalog) ListNamedRoutes(ctx context.Context) ([]string, error) {
	var names []string
	for _, path := range c.files {
		src, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		names = append(names, ParseRouteNames(string(src))...)
	}
	return names, nil
}

// ParseRouteNames returns the names of the routes declared in a route file.
func ParseRouteNames(src string) []string {
	type frame struct {
		prefix string
		depth  int
	}

	var (
		names []string
		stack []frame
		depth int
	)
	prefix := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1].prefix
	}

	for i := 0; i < len(src); {
		switch c := src[i]; {
		case c == '\'' || c == '"':
			i = skipQuoted(src, i)
			continue
		case strings.HasPrefix(src[i:], "//") || c == '#':
			i = skipLine(src, i)
			continue
		case strings.HasPrefix(src[i:], "/*"):
			i = skipBlockComment(src, i)
			continue
		case c == '{':
			depth++
		case c == '}':
			if len(stack) > 0 && stack[len(stack)-1].depth == depth {
				stack = stack[:len(stack)-1]
			}
			depth--
		case strings.HasPrefix(src[i:], "Route::") && (i == 0 || !isIdentByte(src[i-1])):
			chain, next, opensGroup := readChain(src, i)
			if opensGroup {
				depth++
				stack = append(stack, frame{prefix: prefix() + groupPrefix(chain), depth: depth})
			} else {
				names = append(names, expandRoute(chain, prefix())...)
			}
			i = next
			continue
		}
		i++
	}

	return names
}

// readChain reads a Route:: method chain starting at i. It stops after the
// terminating semicolon, or after the opening brace of a group closure.
func readChain(src string, i int) (chain string, next int, opensGroup bool) {
	parens, braces := 0, 0
	for j := i; j < len(src); {
		switch c := src[j]; c {
		case '\'', '"':
			j = skipQuoted(src, j)
			continue
		case '(':
			parens++
		case ')':
			parens--
		case '{':
			if braces == 0 && strings.Contains(src[i:j], "group(") {
				return src[i:j], j + 1, true
			}
			braces++
		case '}':
			braces--
		case ';':
			if parens <= 0 && braces <= 0 {
				return src[i:j], j + 1, false
			}
		}
		j++
	}
	return src[i:], len(src), false
}

func groupPrefix(chain string) string {
	var b strings.Builder
	for _, m := range namePattern.FindAllStringSubmatch(chain, -1) {
		b.WriteString(m[1])
	}
	if m := groupAsPattern.FindStringSubmatch(chain); m != nil {
		b.WriteString(m[1])
	}
	return b.String()
}

func expandRoute(chain, prefix string) []string {
	if m := resourcePattern.FindStringSubmatch(chain); m != nil {
		actions := resourceActions
		if m[1] == "apiResource" {
			actions = apiResourceActions
		}
		actions = filterActions(chain, actions)

		base := strings.ReplaceAll(m[2], "/", ".")
		names := make([]string, 0, len(actions))
		for _, action := range actions {
			names = append(names, prefix+base+"."+action)
		}
		return names
	}

	var b strings.Builder
	for _, m := range namePattern.FindAllStringSubmatch(chain, -1) {
		b.WriteString(m[1])
	}
	if b.Len() == 0 {
		// legacy action array: Route::get('/', ['as' => 'home', ...])
		m := groupAsPattern.FindStringSubmatch(chain)
		if m == nil {
			return nil
		}
		b.WriteString(m[1])
	}
	return []string{prefix + b.String()}
}

// filterActions applies ->only([...]) and ->except([...]) to a resource.
func filterActions(chain string, actions []string) []string {
	m := onlyExceptPattern.FindStringSubmatch(chain)
	if m == nil {
		return actions
	}

	listed := make(map[string]bool)
	for _, q := range quotedPattern.FindAllStringSubmatch(m[2], -1) {
		listed[q[1]] = true
	}

	var out []string
	for _, a := range actions {
		if listed[a] == (m[1] == "only") {
			out = append(out, a)
		}
	}
	return out
}

func skipQuoted(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(src)
}

func skipLine(src string, i int) int {
	if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(src)
}

func skipBlockComment(src string, i int) int {
	if j := strings.Index(src[i+2:], "*/"); j >= 0 {
		return i + 2 + j + 2
	}
	return len(src)
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
